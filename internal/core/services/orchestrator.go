package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultQuoteTimeout   = 3 * time.Second
	defaultStaleThreshold = time.Minute
)

type orchestrator struct {
	BaseService
	quotes    portssvc.QuoteProvider
	fees      portssvc.FeeCalculatorSvc
	wallet    portssvc.WalletLedgerSvc
	portfolio portssvc.PortfolioSvc
	journal   portssvc.TransactionJournalSvc
	tradeRepo portsrepo.TradeRepositoryFacade
	opRepo    portsrepo.OperationRepositoryFacade

	now                func() time.Time
	newID              func() string
	quoteTimeout       time.Duration
	staleThreshold     time.Duration
	withdrawalFeeOnTop bool

	inflight singleflight.Group
}

// OrchestratorDeps are the collaborators every orchestrator needs.
type OrchestratorDeps struct {
	Quotes     portssvc.QuoteProvider
	Fees       portssvc.FeeCalculatorSvc
	Wallet     portssvc.WalletLedgerSvc
	Portfolio  portssvc.PortfolioSvc
	Journal    portssvc.TransactionJournalSvc
	Trades     portsrepo.TradeRepositoryFacade
	Operations portsrepo.OperationRepositoryFacade
}

// OrchestratorOption is a functional option for configuring the orchestrator
type OrchestratorOption func(*orchestrator)

// WithClock replaces time.Now, used for quote staleness and timestamps.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *orchestrator) { o.now = now }
}

// WithIDGenerator replaces the uuid generator for trade and transaction ids.
func WithIDGenerator(newID func() string) OrchestratorOption {
	return func(o *orchestrator) { o.newID = newID }
}

// WithQuoteTimeout bounds every quote fetch.
func WithQuoteTimeout(d time.Duration) OrchestratorOption {
	return func(o *orchestrator) {
		if d > 0 {
			o.quoteTimeout = d
		}
	}
}

// WithStalenessThreshold sets the maximum accepted quote age. Zero disables the check.
func WithStalenessThreshold(d time.Duration) OrchestratorOption {
	return func(o *orchestrator) { o.staleThreshold = d }
}

// WithWithdrawalFeeOnTop debits amount + fee on withdrawals instead of taking
// the fee out of the withdrawn amount.
func WithWithdrawalFeeOnTop(onTop bool) OrchestratorOption {
	return func(o *orchestrator) { o.withdrawalFeeOnTop = onTop }
}

// NewOrchestrator creates the trade/wallet orchestrator with the provided options
func NewOrchestrator(deps OrchestratorDeps, options ...OrchestratorOption) portssvc.OrchestratorSvc {
	o := &orchestrator{
		quotes:         deps.Quotes,
		fees:           deps.Fees,
		wallet:         deps.Wallet,
		portfolio:      deps.Portfolio,
		journal:        deps.Journal,
		tradeRepo:      deps.Trades,
		opRepo:         deps.Operations,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
		quoteTimeout:   defaultQuoteTimeout,
		staleThreshold: defaultStaleThreshold,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

var _ portssvc.OrchestratorSvc = (*orchestrator)(nil)

func (o *orchestrator) GetTrade(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	t, err := o.tradeRepo.FindTradeByID(ctx, userID, tradeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			o.LogError(ctx, err, "Failed to read trade", slog.String("trade_id", tradeID))
		}
		return nil, err
	}
	return t, nil
}
