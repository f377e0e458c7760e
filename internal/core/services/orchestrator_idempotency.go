package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// execute runs fn at most once per operation id. Concurrent duplicates in this
// process share one execution; later duplicates get the recorded outcome. The
// shared execution is detached from any single caller's cancellation, so a
// caller that goes away gets its own ctx error while the others still receive
// the outcome.
func execute[T any](ctx context.Context, o *orchestrator, operationID, userID string, kind domain.OperationKind,
	fn func(ctx context.Context, r *run) (T, error)) (T, error) {
	var zero T
	if operationID == "" {
		operationID = o.newID()
	}
	key := strings.Join([]string{operationID, userID, string(kind)}, "|")

	ch := o.inflight.DoChan(key, func() (any, error) {
		return executeOnce(context.WithoutCancel(ctx), o, operationID, userID, kind, fn)
	})
	select {
	case res := <-ch:
		if res.Shared {
			o.LogDebug(ctx, "Collapsed duplicate in-flight operation", slog.String("operation_id", operationID))
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		o.LogInfo(ctx, "Caller left before operation finished, outcome will be recorded",
			slog.String("operation_id", operationID))
		return zero, ctx.Err()
	}
}

func executeOnce[T any](ctx context.Context, o *orchestrator, operationID, userID string, kind domain.OperationKind,
	fn func(ctx context.Context, r *run) (T, error)) (T, error) {
	var zero T
	now := o.now()
	op := domain.Operation{
		OperationID: operationID,
		UserID:      userID,
		Kind:        kind,
		State:       domain.StateReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, created, err := o.opRepo.BeginOperation(ctx, op)
	if err != nil {
		o.LogError(ctx, err, "Failed to record operation", slog.String("operation_id", operationID))
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			return zero, err
		}
		return zero, apperrors.NewStorageError("failed to record operation "+operationID, err)
	}
	if !created {
		return replay[T](ctx, o, *stored, userID, kind)
	}

	r := newRun(ctx, o, op)
	result, runErr := fn(ctx, r)

	// outcomes are recorded even if the caller went away
	bg := context.WithoutCancel(ctx)
	if runErr != nil {
		if r.releasable(runErr) {
			if err := o.opRepo.ReleaseOperation(bg, operationID); err != nil {
				o.LogError(ctx, err, "Failed to release operation", slog.String("operation_id", operationID))
			}
			return zero, runErr
		}
		op.State = domain.StateFailed
		op.ErrorCode = apperrors.Code(runErr)
		op.ErrorMessage = runErr.Error()
		op.UpdatedAt = o.now()
		if err := o.opRepo.CompleteOperation(bg, op); err != nil {
			o.LogError(ctx, err, "Failed to record operation failure", slog.String("operation_id", operationID))
		}
		return zero, runErr
	}

	payload, err := json.Marshal(result)
	if err != nil {
		o.LogError(ctx, err, "Failed to encode operation result", slog.String("operation_id", operationID))
		return result, nil
	}
	op.State = domain.StateCompleted
	op.Result = payload
	op.UpdatedAt = o.now()
	if err := o.opRepo.CompleteOperation(bg, op); err != nil {
		o.LogError(ctx, err, "Failed to record operation outcome, retries will report it in progress",
			slog.String("operation_id", operationID), slog.Bool("reconciliation", true))
	}
	return result, nil
}

// replay answers a resubmitted operation id from its stored record.
func replay[T any](ctx context.Context, o *orchestrator, stored domain.Operation, userID string, kind domain.OperationKind) (T, error) {
	var zero T
	if err := stored.Matches(userID, kind); err != nil {
		return zero, fmt.Errorf("%w: %v", apperrors.ErrIdempotencyConflict, err)
	}
	if !stored.Finished() {
		return zero, fmt.Errorf("%w: %s is at %s", apperrors.ErrOperationInProgress, stored.OperationID, stored.State)
	}

	o.LogInfo(ctx, "Replaying recorded operation outcome",
		slog.String("operation_id", stored.OperationID),
		slog.String("state", string(stored.State)))

	if stored.State == domain.StateFailed {
		if cause := apperrors.FromCode(stored.ErrorCode); cause != nil {
			return zero, &replayedError{cause: cause, message: stored.ErrorMessage}
		}
		return zero, errors.New(stored.ErrorMessage)
	}

	var result T
	if err := json.Unmarshal(stored.Result, &result); err != nil {
		return zero, fmt.Errorf("decode recorded result of %s: %w", stored.OperationID, err)
	}
	return result, nil
}

// replayedError reproduces a recorded failure: same message, same sentinel.
type replayedError struct {
	cause   error
	message string
}

func (e *replayedError) Error() string { return e.message }
func (e *replayedError) Unwrap() error { return e.cause }
