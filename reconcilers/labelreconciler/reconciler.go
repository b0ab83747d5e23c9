/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelreconciler

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/labeler/reconcilers/labelreconciler/event"
	"github.com/chainguard-dev/clog"
)

var (
	// ErrLabelFetch marks a failure to list repository labels. It is
	// recovered from by continuing with no existing labels.
	ErrLabelFetch = errors.New("fetch repository labels")

	// ErrSuggestion marks a failed label suggestion. Nothing is applied.
	ErrSuggestion = errors.New("suggest labels")

	// ErrApply marks a failed write of labels back to GitHub.
	ErrApply = errors.New("apply labels")
)

// Outcome describes how a successful run ended.
type Outcome int

const (
	// OutcomeApplied means labels were written.
	OutcomeApplied Outcome = iota + 1
	// OutcomeNoLabels means no suggestion matched a repository label, so
	// nothing was written.
	OutcomeNoLabels
	// OutcomeApplyEmpty means the discussion API reported no labels back.
	OutcomeApplyEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoLabels:
		return "no-labels"
	case OutcomeApplyEmpty:
		return "apply-empty"
	default:
		return "none"
	}
}

// SourceControl is the subset of a GitHub client the reconciler uses.
type SourceControl interface {
	ListRepositoryLabels(ctx context.Context) ([]string, error)
	GetIssue(ctx context.Context, number int) (*event.ContentInfo, error)
	ListIssueLabels(ctx context.Context, number int) ([]string, error)
	ReplaceIssueLabels(ctx context.Context, number int, labels []string) ([]string, error)
	GetDiscussion(ctx context.Context, number int) (*event.ContentInfo, error)
	AddDiscussionLabels(ctx context.Context, number int, labels []string) ([]string, error)
}

// Agent suggests labels for a request.
type Agent interface {
	Suggest(ctx context.Context, req *Request) ([]string, error)
}

// Reconciler runs the labeling pipeline against one repository.
type Reconciler struct {
	sc    SourceControl
	agent Agent
}

// New creates a Reconciler.
func New(sc SourceControl, agent Agent) *Reconciler {
	return &Reconciler{sc: sc, agent: agent}
}

// Run loads the event at eventPath and reconciles its content.
func (r *Reconciler) Run(ctx context.Context, eventPath string) (Outcome, error) {
	info, err := event.Load(eventPath)
	if err != nil {
		return 0, err
	}
	return r.Reconcile(ctx, info)
}

// Reconcile suggests, filters and applies labels for info.
//
// When info has an empty title, the issue or discussion is first fetched
// by number through GetIssue or GetDiscussion and the fetched title and
// body are used. If that fetch fails, info is used as is.
func (r *Reconciler) Reconcile(ctx context.Context, info *event.ContentInfo) (Outcome, error) {
	log := clog.FromContext(ctx).With("kind", info.Kind.String(), "number", info.Number)
	ctx = clog.WithLogger(ctx, log)

	if info.Title == "" {
		// Payloads from manual triggers may only carry the number.
		if fresh, err := r.fetch(ctx, info); err != nil {
			log.With("error", err).Warn("Failed to fetch content, continuing with event payload")
		} else {
			info = fresh
		}
	}

	existing, err := r.sc.ListRepositoryLabels(ctx)
	if err != nil {
		log.With("error", fmt.Errorf("%w: %w", ErrLabelFetch, err)).Warn("Error fetching labels, continuing without them")
		existing = nil
	}
	log.With("labels", existing).Info("Existing labels in the repository")

	log.Info("Sending prompt to AI")
	suggested, err := r.agent.Suggest(ctx, NewRequest(info, existing))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSuggestion, err)
	}
	log.With("labels", suggested).Info("AI suggested labels")

	final := NewCanonicalizer(existing).Filter(suggested, func(label string) {
		log.With("label", label).Info("Label does not exist in repository, skipping")
	})
	if len(final) == 0 {
		log.Info("No valid labels to apply")
		return OutcomeNoLabels, nil
	}

	return r.Apply(ctx, info, final)
}

func (r *Reconciler) fetch(ctx context.Context, info *event.ContentInfo) (*event.ContentInfo, error) {
	switch info.Kind {
	case event.KindIssue:
		return r.sc.GetIssue(ctx, info.Number)
	case event.KindDiscussion:
		return r.sc.GetDiscussion(ctx, info.Number)
	default:
		return nil, fmt.Errorf("%w: %v", event.ErrUnknownEventKind, info.Kind)
	}
}

// Apply writes labels to the content described by info.
func (r *Reconciler) Apply(ctx context.Context, info *event.ContentInfo, labels []string) (Outcome, error) {
	log := clog.FromContext(ctx)

	switch info.Kind {
	case event.KindIssue:
		log.With("labels", labels).Info("Applying labels to issue")
		current, err := r.sc.ListIssueLabels(ctx, info.Number)
		if err != nil {
			return 0, fmt.Errorf("%w: list issue labels: %w", ErrApply, err)
		}
		if _, err := r.sc.ReplaceIssueLabels(ctx, info.Number, Union(current, labels)); err != nil {
			return 0, fmt.Errorf("%w: replace issue labels: %w", ErrApply, err)
		}
		log.Info("Labels applied successfully")
		return OutcomeApplied, nil

	case event.KindDiscussion:
		log.With("labels", labels).Info("Applying labels to discussion")
		applied, err := r.sc.AddDiscussionLabels(ctx, info.Number, labels)
		if err != nil {
			return 0, fmt.Errorf("%w: add discussion labels: %w", ErrApply, err)
		}
		if len(applied) == 0 {
			log.Error("Failed to apply labels to discussion: no labels reported back")
			return OutcomeApplyEmpty, nil
		}
		log.With("labels", applied).Info("Labels applied successfully")
		return OutcomeApplied, nil

	default:
		return 0, fmt.Errorf("%w: %v", event.ErrUnknownEventKind, info.Kind)
	}
}
