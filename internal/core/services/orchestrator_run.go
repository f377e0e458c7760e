package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

type compensation struct {
	name string
	fn   func(ctx context.Context) error
}

// run tracks one operation through the state machine and holds the reversing
// actions of every side effect committed so far.
type run struct {
	o       *orchestrator
	op      domain.Operation
	state   domain.OperationState
	undo    []compensation
	mutated bool
	trade   *domain.Trade
	logger  *slog.Logger
}

func newRun(ctx context.Context, o *orchestrator, op domain.Operation) *run {
	return &run{
		o:     o,
		op:    op,
		state: op.State,
		logger: o.GetLogger(ctx).With(
			slog.String("operation_id", op.OperationID),
			slog.String("user_id", op.UserID),
			slog.String("kind", string(op.Kind)),
		),
	}
}

// advance moves the run forward. Progress that cannot be persisted is logged;
// the outcome record written at the end is authoritative.
func (r *run) advance(ctx context.Context, to domain.OperationState) error {
	if !domain.CanTransition(r.state, to) {
		return fmt.Errorf("illegal transition %s -> %s for operation %s", r.state, to, r.op.OperationID)
	}
	r.state = to
	if to.IsTerminal() {
		return nil
	}
	if err := r.o.opRepo.UpdateOperationState(ctx, r.op.OperationID, to); err != nil {
		r.logger.Warn("Failed to persist operation state", slog.String("state", string(to)), slog.String("error", err.Error()))
	}
	return nil
}

// push registers the reversal of a side effect that just committed.
func (r *run) push(name string, fn func(ctx context.Context) error) {
	r.undo = append(r.undo, compensation{name: name, fn: fn})
	r.mutated = true
}

// committed reports whether any side effect was applied, even if later reversed.
func (r *run) committed() bool { return r.mutated }

// releasable reports whether the idempotency key can be reused for a retry:
// the failure is transient and nothing was committed.
func (r *run) releasable(err error) bool {
	if r.committed() || errors.Is(err, apperrors.ErrCompensationFailure) {
		return false
	}
	return apperrors.IsRetryable(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// fail moves the run to FAILED, reverses committed side effects LIFO and marks
// the trade FAILED. It returns cause, or ErrCompensationFailure if a reversal failed.
func (r *run) fail(ctx context.Context, cause error) error {
	from := r.state
	r.state = domain.StateFailed
	bg := context.WithoutCancel(ctx)

	result := cause
	for i := len(r.undo) - 1; i >= 0; i-- {
		c := r.undo[i]
		if err := c.fn(bg); err != nil {
			r.logger.Error("Compensation failed, manual reconciliation required",
				slog.Bool("reconciliation", true),
				slog.String("failed_at", string(from)),
				slog.String("compensation", c.name),
				slog.String("trade_id", r.tradeID()),
				slog.String("cause", cause.Error()),
				slog.String("error", err.Error()))
			result = fmt.Errorf("%w: %s: %v (after: %v)", apperrors.ErrCompensationFailure, c.name, err, cause)
			break
		}
		r.logger.Info("Compensation applied", slog.String("compensation", c.name))
	}
	r.undo = nil

	if r.trade != nil {
		r.finalizeTrade(bg, func(t *domain.Trade) error { return t.Fail(result.Error()) })
	}

	r.logger.Info("Operation failed", slog.String("failed_at", string(from)), slog.String("error", result.Error()))
	return result
}

// finalizeTrade applies the terminal transition to the run's trade and stores it.
func (r *run) finalizeTrade(ctx context.Context, transition func(t *domain.Trade) error) {
	if err := transition(r.trade); err != nil {
		r.logger.Error("Trade already finalized", slog.String("trade_id", r.trade.TradeID), slog.String("error", err.Error()))
		return
	}
	if err := r.o.tradeRepo.FinalizeTrade(ctx, *r.trade); err != nil {
		r.logger.Error("Failed to store trade status, manual reconciliation required",
			slog.Bool("reconciliation", true),
			slog.String("trade_id", r.trade.TradeID),
			slog.String("status", string(r.trade.Status)),
			slog.String("error", err.Error()))
	}
}

func (r *run) tradeID() string {
	if r.trade == nil {
		return ""
	}
	return r.trade.TradeID
}
