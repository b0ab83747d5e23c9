/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is shared by every executor; provider and model are dimensions.
const MeterName = "chainguard.ai.labeler"

// GenAI records token usage of model calls. Counters that fail to
// initialize degrade to no-ops.
type GenAI struct {
	provider         string
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates token counters on the global meter provider for the
// named LLM provider.
func NewGenAI(provider string) *GenAI {
	meter := otel.Meter(MeterName, metric.WithInstrumentationVersion("1.0.0"))
	return &GenAI{
		provider: provider,
		promptTokens: counter(meter, "genai.token.prompt",
			"The number of prompt tokens used"),
		completionTokens: counter(meter, "genai.token.completion",
			"The number of completion tokens used"),
	}
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create counter, metric disabled", "error", err, "counter", name)
		return noop.Int64Counter{}
	}
	return c
}

// SetAttributeEnricher sets the enricher consulted on every record.
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

// RecordTokens records prompt and completion token counts for model.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", m.provider),
		attribute.String("model", model),
	}
	if m.attrEnricher != nil {
		attrs = m.attrEnricher(ctx, attrs)
	}

	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(attrs...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(attrs...))
}
