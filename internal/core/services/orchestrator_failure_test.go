package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var errDiskFull = errors.New("disk full")

// slowQuotes answers only after delay or when the caller gives up.
type slowQuotes struct {
	portssvc.QuoteProvider
	delay time.Duration
}

func (q slowQuotes) GetSecurityPrice(ctx context.Context, symbol string) (domain.Quote, error) {
	select {
	case <-time.After(q.delay):
		return q.QuoteProvider.GetSecurityPrice(ctx, symbol)
	case <-ctx.Done():
		return domain.Quote{}, ctx.Err()
	}
}

type failingJournal struct {
	portssvc.TransactionJournalSvc
}

func (failingJournal) Append(ctx context.Context, txn domain.Transaction) (string, error) {
	return "", apperrors.NewStorageError("failed to append transaction", errDiskFull)
}

// flakyWallet fails Credit once armed, in every currency or only in failCurrency.
type flakyWallet struct {
	portssvc.WalletLedgerSvc
	mu           sync.Mutex
	failCredits  bool
	failCurrency string
}

func (w *flakyWallet) Credit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error) {
	w.mu.Lock()
	fail := w.failCredits && (w.failCurrency == "" || w.failCurrency == currency)
	w.mu.Unlock()
	if fail {
		return nil, apperrors.NewStorageError("failed to credit wallet", errDiskFull)
	}
	return w.WalletLedgerSvc.Credit(ctx, userID, currency, amount)
}

func (w *flakyWallet) arm() { w.armFor("") }

func (w *flakyWallet) armFor(currency string) {
	w.mu.Lock()
	w.failCredits = true
	w.failCurrency = currency
	w.mu.Unlock()
}

// failingPortfolio rejects every ApplyBuy.
type failingPortfolio struct {
	portssvc.PortfolioSvc
}

func (failingPortfolio) ApplyBuy(ctx context.Context, userID, symbol, currency string, quantity, price decimal.Decimal) (*domain.Holding, error) {
	return nil, apperrors.NewStorageError("failed to update holding", errDiskFull)
}

func (s *OrchestratorTestSuite) TestJournalFailureReversesBuy() {
	s.deposit("d1", "USD", "100")
	_, err := s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "seed", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("2")})
	s.Require().NoError(err)
	s.h.quotes.SetPrice("XYZ", dec("20.00"), "USD")
	walletBefore := s.balance("USD")

	s.h.deps.Journal = failingJournal{s.h.journal}
	s.o = s.h.orchestrator()

	_, err = s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("2")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.NotErrorIs(err, apperrors.ErrCompensationFailure)

	s.Equal(walletBefore, s.balance("USD"))
	h := s.holding("XYZ")
	s.Require().NotNil(h)
	s.Equal("2.00", money(h.Quantity))
	s.True(h.AveragePrice.Equal(dec("10")), "average price restored, got %s", h.AveragePrice)

	failed, err := s.o.GetTrade(s.ctx, "u1", s.h.trades.last())
	s.Require().NoError(err)
	s.Equal(domain.TradeFailed, failed.Status)

	// side effects happened and were reversed, so the outcome is recorded
	_, err = s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("2")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.Equal(walletBefore, s.balance("USD"))
}

func (s *OrchestratorTestSuite) TestJournalFailureReversesWalletOperations() {
	s.deposit("d1", "USD", "100")
	s.h.deps.Journal = failingJournal{s.h.journal}
	s.o = s.h.orchestrator()

	_, err := s.o.Withdraw(s.ctx, domain.WithdrawCommand{OperationID: "w1", UserID: "u1", Currency: "USD", Amount: dec("40")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.Equal("100.00", s.balance("USD"))

	_, err = s.o.Deposit(s.ctx, domain.DepositCommand{OperationID: "d2", UserID: "u1", Currency: "USD", Amount: dec("40")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.Equal("100.00", s.balance("USD"))

	_, err = s.o.Exchange(s.ctx, domain.ExchangeCommand{OperationID: "x1", UserID: "u1", FromCurrency: "USD", ToCurrency: "EUR", Amount: dec("40")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.Equal("100.00", s.balance("USD"))
	s.Equal("0.00", s.balance("EUR"))
}

func (s *OrchestratorTestSuite) TestPortfolioFailureRefundsBuy() {
	s.deposit("d1", "USD", "100")
	s.h.deps.Portfolio = failingPortfolio{s.h.portfolio}
	s.o = s.h.orchestrator()

	_, err := s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByAmount, Amount: dec("50")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.Equal("100.00", s.balance("USD"))
	s.Nil(s.holding("XYZ"))
}

func (s *OrchestratorTestSuite) TestSellCreditFailureRestoresShares() {
	wallet := &flakyWallet{WalletLedgerSvc: s.h.wallet}
	s.h.deps.Wallet = wallet
	s.o = s.h.orchestrator()

	s.deposit("d1", "USD", "100")
	_, err := s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("3")})
	s.Require().NoError(err)
	walletBefore := s.balance("USD")

	wallet.arm()
	_, err = s.o.Sell(s.ctx, domain.TradeCommand{OperationID: "s1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("3")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)

	h := s.holding("XYZ")
	s.Require().NotNil(h)
	s.Equal("3.00", money(h.Quantity))
	s.True(h.AveragePrice.Equal(dec("10")))
	s.Equal(walletBefore, s.balance("USD"))
}

func (s *OrchestratorTestSuite) TestExchangeCreditFailureRefundsSource() {
	wallet := &flakyWallet{WalletLedgerSvc: s.h.wallet}
	s.h.deps.Wallet = wallet
	s.o = s.h.orchestrator()
	s.deposit("d1", "USD", "100")

	wallet.armFor("EUR")
	_, err := s.o.Exchange(s.ctx, domain.ExchangeCommand{OperationID: "x1", UserID: "u1", FromCurrency: "USD", ToCurrency: "EUR", Amount: dec("100")})
	s.ErrorIs(err, apperrors.ErrStorageUnavailable)
	s.NotErrorIs(err, apperrors.ErrCompensationFailure)

	s.Equal("100.00", s.balance("USD"))
	s.Equal("0.00", s.balance("EUR"))
	exchanges := domain.TransactionCurrencyExchange
	s.Empty(s.history(&exchanges))
}

func (s *OrchestratorTestSuite) TestFailedCompensationIsReported() {
	wallet := &flakyWallet{WalletLedgerSvc: s.h.wallet}
	s.h.deps.Wallet = wallet
	s.h.deps.Journal = failingJournal{s.h.journal}
	s.o = s.h.orchestrator()

	_, err := s.h.wallet.Credit(s.ctx, "u1", "USD", dec("100"))
	s.Require().NoError(err)

	wallet.arm()
	_, err = s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("1")})
	s.ErrorIs(err, apperrors.ErrCompensationFailure)
	s.Equal("COMPENSATION_FAILURE", apperrors.Code(err))
	s.False(apperrors.IsRetryable(err))

	// the debit could not be refunded; the shares were taken back
	s.Equal("89.90", s.balance("USD"))
	s.Nil(s.holding("XYZ"))

	failed, err := s.o.GetTrade(s.ctx, "u1", s.h.trades.last())
	s.Require().NoError(err)
	s.Equal(domain.TradeFailed, failed.Status)
	s.Contains(failed.FailureReason, "refund buy debit")

	_, err = s.o.Buy(s.ctx, domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("1")})
	s.ErrorIs(err, apperrors.ErrCompensationFailure)
	s.Equal("89.90", s.balance("USD"))
}
