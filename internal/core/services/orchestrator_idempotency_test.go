package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

func (s *OrchestratorTestSuite) TestDuplicateBuyExecutesOnce() {
	s.deposit("d1", "USD", "100")
	cmd := domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByAmount, Amount: dec("50")}

	first, err := s.o.Buy(s.ctx, cmd)
	s.Require().NoError(err)
	second, err := s.o.Buy(s.ctx, cmd)
	s.Require().NoError(err)

	s.Equal(first.TradeID, second.TradeID)
	s.True(first.TotalAmount.Equal(second.TotalAmount))
	s.Equal(first.Status, second.Status)
	s.Equal("50.00", s.balance("USD"))
	s.Len(s.h.trades.saved, 1)

	buys := domain.TransactionBuy
	s.Len(s.history(&buys), 1)
}

func (s *OrchestratorTestSuite) TestConcurrentDuplicatesShareOneExecution() {
	s.deposit("d1", "USD", "100")
	cmd := domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("2")}

	const n = 10
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			trade, err := s.o.Buy(s.ctx, cmd)
			if s.NoError(err) {
				ids[i] = trade.TradeID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	s.Len(s.h.trades.saved, 1)
	s.Equal("79.80", s.balance("USD"))
	s.Equal("2.00", money(s.holding("XYZ").Quantity))
}

func (s *OrchestratorTestSuite) TestDuplicateDepositReturnsRecordedBalance() {
	first := s.deposit("d1", "USD", "100")
	s.deposit("d2", "USD", "5")

	replayed := s.deposit("d1", "USD", "100")
	s.Equal(first.Currency, replayed.Currency)
	s.Equal("100.00", money(replayed.Balance))
	s.Equal("105.00", s.balance("USD"))
}

func (s *OrchestratorTestSuite) TestReusedKeyForDifferentIntentConflicts() {
	s.deposit("k1", "USD", "100")

	_, err := s.o.Withdraw(s.ctx, domain.WithdrawCommand{OperationID: "k1", UserID: "u1", Currency: "USD", Amount: dec("10")})
	s.ErrorIs(err, apperrors.ErrIdempotencyConflict)

	_, err = s.o.Deposit(s.ctx, domain.DepositCommand{OperationID: "k1", UserID: "u2", Currency: "USD", Amount: dec("100")})
	s.ErrorIs(err, apperrors.ErrIdempotencyConflict)
	s.Equal("100.00", s.balance("USD"))
}

func (s *OrchestratorTestSuite) TestUnfinishedOperationIsInProgress() {
	_, created, err := s.h.repos.OperationRepo.BeginOperation(s.ctx, domain.Operation{
		OperationID: "busy",
		UserID:      "u1",
		Kind:        domain.OperationDeposit,
		State:       domain.StateReceived,
	})
	s.Require().NoError(err)
	s.Require().True(created)

	_, err = s.o.Deposit(s.ctx, domain.DepositCommand{OperationID: "busy", UserID: "u1", Currency: "USD", Amount: dec("10")})
	s.ErrorIs(err, apperrors.ErrOperationInProgress)
	s.True(apperrors.IsRetryable(err))
	s.Equal("0.00", s.balance("USD"))
}

func (s *OrchestratorTestSuite) TestRecordedFailureIsReplayed() {
	cmd := domain.WithdrawCommand{OperationID: "w1", UserID: "u1", Currency: "USD", Amount: dec("500")}
	_, first := s.o.Withdraw(s.ctx, cmd)
	s.Require().ErrorIs(first, apperrors.ErrInsufficientFunds)

	s.deposit("d1", "USD", "1000")

	_, err := s.o.Withdraw(s.ctx, cmd)
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Equal(first.Error(), err.Error())
	s.Equal("1000.00", s.balance("USD"))
}

func (s *OrchestratorTestSuite) TestCancelledCallerDoesNotFailSharedExecution() {
	s.h.deps.Quotes = slowQuotes{QuoteProvider: s.h.quotes, delay: 200 * time.Millisecond}
	s.o = s.h.orchestrator()
	s.deposit("d1", "USD", "100")
	cmd := domain.TradeCommand{OperationID: "b1", UserID: "u1", Symbol: "XYZ", Currency: "USD", OrderType: domain.OrderByQuantity, Quantity: dec("2")}

	type outcome struct {
		trade *domain.Trade
		err   error
	}
	leaving, cancel := context.WithCancel(s.ctx)
	defer cancel()
	first := make(chan outcome, 1)
	second := make(chan outcome, 1)

	go func() {
		t, err := s.o.Buy(leaving, cmd)
		first <- outcome{t, err}
	}()
	time.Sleep(5 * time.Millisecond)
	go func() {
		t, err := s.o.Buy(s.ctx, cmd)
		second <- outcome{t, err}
	}()
	time.Sleep(15 * time.Millisecond)
	cancel()

	gone := <-first
	s.ErrorIs(gone.err, context.Canceled)

	stayed := <-second
	s.Require().NoError(stayed.err)
	s.Equal(domain.TradeCompleted, stayed.trade.Status)
	s.Len(s.h.trades.saved, 1)
	s.Equal("79.80", s.balance("USD"))

	again, err := s.o.Buy(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(stayed.trade.TradeID, again.TradeID)
	s.Len(s.h.trades.saved, 1)
}
