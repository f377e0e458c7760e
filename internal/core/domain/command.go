package domain

import "github.com/shopspring/decimal"

// DepositCommand asks for a wallet to be credited.
type DepositCommand struct {
	OperationID string
	UserID      string
	Currency    string
	Amount      decimal.Decimal
}

// WithdrawCommand asks for a wallet to be debited.
type WithdrawCommand struct {
	OperationID string
	UserID      string
	Currency    string
	Amount      decimal.Decimal
}

// TradeCommand is a buy or sell request. Amount is used for BY_AMOUNT orders,
// Quantity for BY_QUANTITY. Currency names the wallet that pays or is paid and
// must match the currency the security is quoted in.
type TradeCommand struct {
	OperationID string
	UserID      string
	Symbol      string
	Currency    string
	OrderType   OrderType
	Amount      decimal.Decimal
	Quantity    decimal.Decimal
}

// ExchangeCommand converts Amount of FromCurrency into ToCurrency.
type ExchangeCommand struct {
	OperationID  string
	UserID       string
	FromCurrency string
	ToCurrency   string
	Amount       decimal.Decimal
}
