package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// validateTrade normalises the symbol and currency and checks the order size
// field that matches the order type.
func validateTrade(cmd domain.TradeCommand) (string, string, error) {
	symbol, err := domain.NormalizeSymbol(cmd.Symbol)
	if err != nil {
		return "", "", apperrors.NewValidationError(err.Error())
	}
	currency, err := domain.NormalizeCurrency(cmd.Currency)
	if err != nil {
		return "", "", apperrors.NewValidationError(err.Error())
	}
	switch cmd.OrderType {
	case domain.OrderByAmount:
		err = domain.ValidatePositiveScaled(cmd.Amount, "amount")
	case domain.OrderByQuantity:
		err = domain.ValidatePositiveScaled(cmd.Quantity, "quantity")
	default:
		return "", "", apperrors.NewValidationError(fmt.Sprintf("unknown order type %q", cmd.OrderType))
	}
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	return symbol, currency, nil
}

// checkQuoteCurrency rejects a quote that is not denominated in the order's currency.
func checkQuoteCurrency(q domain.Quote, symbol, currency string) error {
	quoted, err := domain.NormalizeCurrency(q.Currency)
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("quote for %s carries no usable currency", symbol))
	}
	if quoted != currency {
		return apperrors.NewValidationError(fmt.Sprintf("%s is quoted in %s, not %s", symbol, quoted, currency))
	}
	return nil
}

// Buy prices the security, debits cost + fee, then adds the shares to the
// holding. A holding or journal failure refunds the debit.
func (o *orchestrator) Buy(ctx context.Context, cmd domain.TradeCommand) (*domain.Trade, error) {
	symbol, currency, err := validateTrade(cmd)
	if err != nil {
		return nil, err
	}

	return execute(ctx, o, cmd.OperationID, cmd.UserID, domain.OperationBuy,
		func(ctx context.Context, r *run) (*domain.Trade, error) {
			q, err := o.securityQuote(ctx, symbol)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			if err := checkQuoteCurrency(q, symbol, currency); err != nil {
				return nil, r.fail(ctx, err)
			}
			if err := r.advance(ctx, domain.StatePriced); err != nil {
				return nil, r.fail(ctx, err)
			}

			price := q.Price
			var quantity, cost, fee decimal.Decimal
			switch cmd.OrderType {
			case domain.OrderByAmount:
				if fee, err = o.fees.ComputeFee(domain.OperationBuy, cmd.Amount, currency); err != nil {
					return nil, r.fail(ctx, err)
				}
				quantity = domain.RoundQuantity(cmd.Amount.Sub(fee).Div(price))
				cost = domain.RoundDebit(quantity.Mul(price))
			case domain.OrderByQuantity:
				quantity = cmd.Quantity
				cost = domain.RoundDebit(quantity.Mul(price))
				if !cost.IsPositive() {
					return nil, r.fail(ctx, fmt.Errorf("%w: order value rounds to zero", apperrors.ErrInvalidAmount))
				}
				if fee, err = o.fees.ComputeFee(domain.OperationBuy, cost, currency); err != nil {
					return nil, r.fail(ctx, err)
				}
			}
			if !quantity.IsPositive() || !cost.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: amount buys no shares of %s at %s", apperrors.ErrInvalidAmount, symbol, price.String()))
			}
			debit := cost.Add(fee)
			if err := r.advance(ctx, domain.StateFeeComputed); err != nil {
				return nil, r.fail(ctx, err)
			}

			if err := o.openTrade(ctx, r, cmd, symbol, domain.TradeBuy, quantity, price, currency, debit, fee); err != nil {
				return nil, r.fail(ctx, err)
			}

			if _, err := o.wallet.Debit(ctx, cmd.UserID, currency, debit); err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("refund buy debit", func(ctx context.Context) error {
				_, err := o.wallet.Credit(ctx, cmd.UserID, currency, debit)
				return err
			})
			if err := r.advance(ctx, domain.StateWalletReserved); err != nil {
				return nil, r.fail(ctx, err)
			}
			if err := r.advance(ctx, domain.StateLedgerCommitted); err != nil {
				return nil, r.fail(ctx, err)
			}

			if _, err := o.portfolio.ApplyBuy(ctx, cmd.UserID, symbol, currency, quantity, price); err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("remove bought shares", func(ctx context.Context) error {
				_, err := o.portfolio.ReverseBuy(ctx, cmd.UserID, symbol, quantity, price)
				return err
			})
			if err := r.advance(ctx, domain.StatePortfolioUpdated); err != nil {
				return nil, r.fail(ctx, err)
			}

			return o.closeTrade(ctx, r, domain.TransactionBuy)
		})
}

// Sell prices the security, checks and removes the shares, then credits
// proceeds less fee. A wallet or journal failure puts the shares back at their
// previous average price.
func (o *orchestrator) Sell(ctx context.Context, cmd domain.TradeCommand) (*domain.Trade, error) {
	symbol, currency, err := validateTrade(cmd)
	if err != nil {
		return nil, err
	}

	return execute(ctx, o, cmd.OperationID, cmd.UserID, domain.OperationSell,
		func(ctx context.Context, r *run) (*domain.Trade, error) {
			q, err := o.securityQuote(ctx, symbol)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			if err := checkQuoteCurrency(q, symbol, currency); err != nil {
				return nil, r.fail(ctx, err)
			}
			if err := r.advance(ctx, domain.StatePriced); err != nil {
				return nil, r.fail(ctx, err)
			}

			price := q.Price
			quantity := cmd.Quantity
			if cmd.OrderType == domain.OrderByAmount {
				quantity = domain.RoundQuantity(cmd.Amount.Div(price))
			}
			if !quantity.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: amount sells no shares of %s at %s", apperrors.ErrInvalidAmount, symbol, price.String()))
			}
			proceeds := domain.RoundCredit(quantity.Mul(price))
			fee, err := o.fees.ComputeFee(domain.OperationSell, proceeds, currency)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			credit := proceeds.Sub(fee)
			if !credit.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: proceeds do not cover the fee", apperrors.ErrInvalidAmount))
			}
			if err := r.advance(ctx, domain.StateFeeComputed); err != nil {
				return nil, r.fail(ctx, err)
			}

			if err := o.openTrade(ctx, r, cmd, symbol, domain.TradeSell, quantity, price, currency, credit, fee); err != nil {
				return nil, r.fail(ctx, err)
			}

			// verify before mutating anything
			held, err := o.portfolio.GetHolding(ctx, cmd.UserID, symbol)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, r.fail(ctx, err)
			}
			if held == nil || held.Quantity.LessThan(quantity) {
				have := decimal.Zero
				if held != nil {
					have = held.Quantity
				}
				return nil, r.fail(ctx, fmt.Errorf("%w: holding %s of %s, requested %s",
					apperrors.ErrInsufficientHoldings, have.String(), symbol, quantity.String()))
			}
			priorAverage, holdingCurrency := held.AveragePrice, held.Currency

			if _, err := o.portfolio.ApplySell(ctx, cmd.UserID, symbol, quantity); err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("restore sold shares", func(ctx context.Context) error {
				_, err := o.portfolio.ApplyBuy(ctx, cmd.UserID, symbol, holdingCurrency, quantity, priorAverage)
				return err
			})
			if err := r.advance(ctx, domain.StateWalletReserved); err != nil {
				return nil, r.fail(ctx, err)
			}

			if _, err := o.wallet.Credit(ctx, cmd.UserID, currency, credit); err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("reverse sell credit", func(ctx context.Context) error {
				_, err := o.wallet.Debit(ctx, cmd.UserID, currency, credit)
				return err
			})
			if err := r.advance(ctx, domain.StateLedgerCommitted); err != nil {
				return nil, r.fail(ctx, err)
			}

			return o.closeTrade(ctx, r, domain.TransactionSell)
		})
}

// openTrade saves the PENDING trade before the first mutation.
func (o *orchestrator) openTrade(ctx context.Context, r *run, cmd domain.TradeCommand, symbol string, tradeType domain.TradeType,
	quantity, price decimal.Decimal, currency string, total, fee decimal.Decimal) error {
	trade := domain.Trade{
		TradeID:      o.newID(),
		UserID:       cmd.UserID,
		Symbol:       symbol,
		TradeType:    tradeType,
		OrderType:    cmd.OrderType,
		Quantity:     quantity,
		PricePerUnit: price,
		Currency:     currency,
		TotalAmount:  total,
		Fees:         fee,
		Status:       domain.TradePending,
		CreatedAt:    o.now(),
	}
	if err := o.tradeRepo.SaveTrade(ctx, trade); err != nil {
		if errors.Is(err, apperrors.ErrStorageUnavailable) {
			return err
		}
		return apperrors.NewStorageError("failed to save trade "+trade.TradeID, err)
	}
	r.trade = &trade
	r.logger = r.logger.With(slog.String("trade_id", trade.TradeID))
	return nil
}

// closeTrade journals the trade and marks it COMPLETED. Once the journal entry
// exists the trade is not rolled back; a failure to store COMPLETED is left for
// reconciliation.
func (o *orchestrator) closeTrade(ctx context.Context, r *run, txnType domain.TransactionType) (*domain.Trade, error) {
	t := r.trade
	tradeID := t.TradeID
	if err := o.appendJournal(ctx, r, domain.Transaction{
		UserID:          t.UserID,
		Type:            txnType,
		Currency:        t.Currency,
		Amount:          t.TotalAmount,
		Fees:            t.Fees,
		RelatedEntityID: &tradeID,
		Metadata: map[string]any{
			"symbol":       t.Symbol,
			"orderType":    string(t.OrderType),
			"quantity":     domain.FormatMoney(t.Quantity),
			"pricePerUnit": t.PricePerUnit.String(),
		},
	}); err != nil {
		return nil, r.fail(ctx, err)
	}

	r.finalizeTrade(context.WithoutCancel(ctx), func(t *domain.Trade) error { return t.Complete(o.now()) })
	if err := r.advance(ctx, domain.StateCompleted); err != nil {
		return nil, err
	}
	r.logger.Info("Trade completed",
		slog.String("symbol", t.Symbol),
		slog.String("quantity", domain.FormatMoney(t.Quantity)),
		slog.String("total", domain.FormatMoney(t.TotalAmount)),
		slog.String("fees", domain.FormatMoney(t.Fees)))
	completed := *t
	return &completed, nil
}
