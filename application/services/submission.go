// Package services implements the submission flows behind the admin forms:
// create, edit with change detection, and association management.
package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

// SubmissionState is one step of the edit submission flow:
// Idle -> Validating -> (NoChanges | Submitting) -> (Success | Failed) -> Idle.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateValidating SubmissionState = "validating"
	StateNoChanges  SubmissionState = "no_changes"
	StateSubmitting SubmissionState = "submitting"
	StateSuccess    SubmissionState = "success"
	StateFailed     SubmissionState = "failed"
)

// EditFlow drives one entity's edit submission: validate, diff against the
// original record, and patch each changed field upstream in parallel.
// NoChanges and Failed leave the original record untouched; Success replaces
// it with the edited one.
type EditFlow struct {
	entity   string
	tracked  []forms.TrackedField
	client   ports.UpstreamClient
	notifier ports.Notifier
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewEditFlow creates an edit flow for one entity type.
func NewEditFlow(
	entity string,
	tracked []forms.TrackedField,
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *EditFlow {
	return &EditFlow{
		entity:   entity,
		tracked:  tracked,
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Submit runs the edit flow for one record. form carries the edited values
// already set; original is the record as loaded for editing. The returned
// state is the terminal one reached before the flow goes back to idle.
func (f *EditFlow) Submit(ctx context.Context, id string, original forms.Record, form *forms.Form) (SubmissionState, error) {
	// Validating
	if !form.Validate() {
		f.metrics.RecordValidationFailure(f.entity)
		f.metrics.RecordSubmission(f.entity, string(StateFailed))
		return StateFailed, validationError(form)
	}

	edited := form.Values()
	changes := forms.ComputeChangeSet(original, edited, f.tracked)
	if len(changes) == 0 {
		// Nothing to submit: short-circuit without touching the upstream.
		f.metrics.EmptyChangesets.Inc()
		f.metrics.RecordSubmission(f.entity, string(StateNoChanges))
		f.notifier.Success("nenhuma alteração para salvar")
		return StateNoChanges, nil
	}

	// Submitting: one patch per changed field, issued in parallel. Each
	// outcome is recorded per field; there is no rollback.
	partial := apperrors.NewPartialUpdateError(f.entity, id)
	var mu sync.Mutex
	var group errgroup.Group

	for _, change := range changes {
		change := change
		group.Go(func() error {
			err := f.client.Update(ctx, f.entity, id, forms.Record{change.Field: change.Value})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				partial.AddFailed(change.Field, err)
			} else {
				partial.AddApplied(change.Field)
			}
			return nil
		})
	}
	group.Wait()

	if partial.HasFailures() {
		f.logger.Error("Edit submission failed",
			zap.String("entity", f.entity),
			zap.String("id", id),
			zap.Strings("failed_fields", partial.FailedFields()),
			zap.Strings("applied_fields", partial.Applied),
		)
		f.metrics.RecordSubmission(f.entity, string(StateFailed))
		f.notifier.Error("falha ao salvar algumas alterações")
		return StateFailed, partial
	}

	f.logger.Info("Edit submission applied",
		zap.String("entity", f.entity),
		zap.String("id", id),
		zap.Int("fields", len(changes)),
	)
	f.metrics.RecordSubmission(f.entity, string(StateSuccess))
	f.notifier.Success("alterações salvas")
	return StateSuccess, nil
}

// validationError folds the form's field messages into one response error.
func validationError(form *forms.Form) error {
	fieldErrors := form.Errors()
	details := make(map[string]interface{}, len(fieldErrors))
	for field, msg := range fieldErrors {
		details[field] = msg
	}
	return apperrors.NewValidationError("formulário inválido").WithDetails(details)
}
