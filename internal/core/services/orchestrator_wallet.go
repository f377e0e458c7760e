package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func validateMoney(currency string, amount decimal.Decimal) (string, error) {
	if err := domain.ValidatePositiveScaled(amount, "amount"); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	c, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}
	return c, nil
}

// Deposit credits the wallet with amount less the deposit fee.
func (o *orchestrator) Deposit(ctx context.Context, cmd domain.DepositCommand) (*domain.WalletBalance, error) {
	currency, err := validateMoney(cmd.Currency, cmd.Amount)
	if err != nil {
		return nil, err
	}

	return execute(ctx, o, cmd.OperationID, cmd.UserID, domain.OperationDeposit,
		func(ctx context.Context, r *run) (*domain.WalletBalance, error) {
			fee, err := o.fees.ComputeFee(domain.OperationDeposit, cmd.Amount, currency)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			credit := cmd.Amount.Sub(fee)
			if !credit.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: deposit does not cover its fee", apperrors.ErrInvalidAmount))
			}
			if err := r.advance(ctx, domain.StateFeeComputed); err != nil {
				return nil, r.fail(ctx, err)
			}

			balance, err := o.wallet.Credit(ctx, cmd.UserID, currency, credit)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("reverse deposit credit", func(ctx context.Context) error {
				_, err := o.wallet.Debit(ctx, cmd.UserID, currency, credit)
				return err
			})
			if err := r.advance(ctx, domain.StateLedgerCommitted); err != nil {
				return nil, r.fail(ctx, err)
			}

			if err := o.appendJournal(ctx, r, domain.Transaction{
				UserID:   cmd.UserID,
				Type:     domain.TransactionDeposit,
				Currency: currency,
				Amount:   cmd.Amount,
				Fees:     fee,
				Metadata: map[string]any{
					"creditedAmount": domain.FormatMoney(credit),
				},
			}); err != nil {
				return nil, r.fail(ctx, err)
			}
			return balance, r.advance(ctx, domain.StateCompleted)
		})
}

// Withdraw debits the wallet. By default the fee is taken out of the withdrawn
// amount; with the fee on top the wallet is debited amount + fee.
func (o *orchestrator) Withdraw(ctx context.Context, cmd domain.WithdrawCommand) (*domain.WalletBalance, error) {
	currency, err := validateMoney(cmd.Currency, cmd.Amount)
	if err != nil {
		return nil, err
	}

	return execute(ctx, o, cmd.OperationID, cmd.UserID, domain.OperationWithdrawal,
		func(ctx context.Context, r *run) (*domain.WalletBalance, error) {
			fee, err := o.fees.ComputeFee(domain.OperationWithdrawal, cmd.Amount, currency)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			debit, payout := cmd.Amount, cmd.Amount.Sub(fee)
			if o.withdrawalFeeOnTop {
				debit, payout = cmd.Amount.Add(fee), cmd.Amount
			}
			if !payout.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: withdrawal does not cover its fee", apperrors.ErrInvalidAmount))
			}
			if err := r.advance(ctx, domain.StateFeeComputed); err != nil {
				return nil, r.fail(ctx, err)
			}

			balance, err := o.wallet.Debit(ctx, cmd.UserID, currency, debit)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("refund withdrawal debit", func(ctx context.Context) error {
				_, err := o.wallet.Credit(ctx, cmd.UserID, currency, debit)
				return err
			})
			if err := r.advance(ctx, domain.StateLedgerCommitted); err != nil {
				return nil, r.fail(ctx, err)
			}

			if err := o.appendJournal(ctx, r, domain.Transaction{
				UserID:   cmd.UserID,
				Type:     domain.TransactionWithdrawal,
				Currency: currency,
				Amount:   cmd.Amount,
				Fees:     fee,
				Metadata: map[string]any{
					"debitedAmount": domain.FormatMoney(debit),
					"payoutAmount":  domain.FormatMoney(payout),
				},
			}); err != nil {
				return nil, r.fail(ctx, err)
			}
			return balance, r.advance(ctx, domain.StateCompleted)
		})
}

// Exchange debits the source wallet and credits the destination wallet with the
// converted amount less the spread fee, charged in the destination currency.
func (o *orchestrator) Exchange(ctx context.Context, cmd domain.ExchangeCommand) (*domain.ExchangeResult, error) {
	from, err := validateMoney(cmd.FromCurrency, cmd.Amount)
	if err != nil {
		return nil, err
	}
	to, err := domain.NormalizeCurrency(cmd.ToCurrency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if from == to {
		return nil, apperrors.NewValidationError("cannot exchange " + from + " into itself")
	}

	return execute(ctx, o, cmd.OperationID, cmd.UserID, domain.OperationExchange,
		func(ctx context.Context, r *run) (*domain.ExchangeResult, error) {
			q, err := o.exchangeRate(ctx, from, to)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			if err := r.advance(ctx, domain.StatePriced); err != nil {
				return nil, r.fail(ctx, err)
			}

			rate := domain.RoundRate(q.Price)
			converted := domain.RoundCredit(cmd.Amount.Mul(rate))
			if !converted.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: amount converts to nothing", apperrors.ErrInvalidAmount))
			}
			fee, err := o.fees.ComputeFee(domain.OperationExchange, converted, to)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			credit := converted.Sub(fee)
			if !credit.IsPositive() {
				return nil, r.fail(ctx, fmt.Errorf("%w: exchange does not cover its fee", apperrors.ErrInvalidAmount))
			}
			if err := r.advance(ctx, domain.StateFeeComputed); err != nil {
				return nil, r.fail(ctx, err)
			}

			src, err := o.wallet.Debit(ctx, cmd.UserID, from, cmd.Amount)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("refund exchange debit", func(ctx context.Context) error {
				_, err := o.wallet.Credit(ctx, cmd.UserID, from, cmd.Amount)
				return err
			})
			if err := r.advance(ctx, domain.StateWalletReserved); err != nil {
				return nil, r.fail(ctx, err)
			}

			dst, err := o.wallet.Credit(ctx, cmd.UserID, to, credit)
			if err != nil {
				return nil, r.fail(ctx, err)
			}
			r.push("reverse exchange credit", func(ctx context.Context) error {
				_, err := o.wallet.Debit(ctx, cmd.UserID, to, credit)
				return err
			})
			if err := r.advance(ctx, domain.StateLedgerCommitted); err != nil {
				return nil, r.fail(ctx, err)
			}

			result := &domain.ExchangeResult{
				FromBalance:     *src,
				ToBalance:       *dst,
				DebitedAmount:   cmd.Amount,
				ConvertedAmount: converted,
				CreditedAmount:  credit,
				ExchangeRate:    rate,
				Fee:             fee,
			}
			if err := o.appendJournal(ctx, r, domain.Transaction{
				UserID:   cmd.UserID,
				Type:     domain.TransactionCurrencyExchange,
				Currency: from,
				Amount:   cmd.Amount,
				Fees:     fee,
				Metadata: map[string]any{
					"fromCurrency":    from,
					"toCurrency":      to,
					"exchangeRate":    rate.StringFixed(domain.RateScale),
					"convertedAmount": domain.FormatMoney(converted),
					"creditedAmount":  domain.FormatMoney(credit),
					"feeCurrency":     to,
					"fromBalance":     domain.FormatMoney(src.Balance),
					"toBalance":       domain.FormatMoney(dst.Balance),
				},
			}); err != nil {
				return nil, r.fail(ctx, err)
			}
			return result, r.advance(ctx, domain.StateCompleted)
		})
}

// appendJournal writes the operation's journal entry and advances to JOURNALED.
func (o *orchestrator) appendJournal(ctx context.Context, r *run, txn domain.Transaction) error {
	txn.TransactionID = o.newID()
	txn.CreatedAt = o.now()
	if txn.Metadata == nil {
		txn.Metadata = map[string]any{}
	}
	txn.Metadata["operationID"] = r.op.OperationID
	if _, err := o.journal.Append(ctx, txn); err != nil {
		return err
	}
	return r.advance(ctx, domain.StateJournaled)
}
