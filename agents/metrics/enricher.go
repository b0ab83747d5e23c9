/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// AttributeEnricher adds caller context (for example the repository being
// labeled) to the base attributes of every recorded metric.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue
