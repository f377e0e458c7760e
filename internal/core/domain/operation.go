package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// OperationKind is the user intent an orchestrated request carries.
type OperationKind string

const (
	OperationDeposit    OperationKind = "DEPOSIT"
	OperationWithdrawal OperationKind = "WITHDRAWAL"
	OperationBuy        OperationKind = "BUY"
	OperationSell       OperationKind = "SELL"
	OperationExchange   OperationKind = "CURRENCY_EXCHANGE"
)

// OperationState is a step of the orchestration state machine.
type OperationState string

const (
	StateReceived         OperationState = "RECEIVED"
	StatePriced           OperationState = "PRICED"
	StateFeeComputed      OperationState = "FEE_COMPUTED"
	StateWalletReserved   OperationState = "WALLET_RESERVED"
	StateLedgerCommitted  OperationState = "LEDGER_COMMITTED"
	StatePortfolioUpdated OperationState = "PORTFOLIO_UPDATED"
	StateJournaled        OperationState = "JOURNALED"
	StateCompleted        OperationState = "COMPLETED"
	StateFailed           OperationState = "FAILED"
)

var stateRank = map[OperationState]int{
	StateReceived:         0,
	StatePriced:           1,
	StateFeeComputed:      2,
	StateWalletReserved:   3,
	StateLedgerCommitted:  4,
	StatePortfolioUpdated: 5,
	StateJournaled:        6,
	StateCompleted:        7,
}

// IsTerminal reports whether no further transition is allowed.
func (s OperationState) IsTerminal() bool { return s == StateCompleted || s == StateFailed }

// CanTransition reports whether from -> to is legal. Steps that do not apply to
// an operation may be skipped, but the machine never moves backwards.
func CanTransition(from, to OperationState) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	fr, ok1 := stateRank[from]
	tr, ok2 := stateRank[to]
	return ok1 && ok2 && tr > fr
}

// Operation is the idempotency record of one orchestrated request.
type Operation struct {
	OperationID  string          `json:"operationID"`
	UserID       string          `json:"userID"`
	Kind         OperationKind   `json:"kind"`
	State        OperationState  `json:"state"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorCode    string          `json:"errorCode,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Finished reports whether the operation has a recorded outcome.
func (o Operation) Finished() bool { return o.State.IsTerminal() }

// Matches reports whether a resubmission is for the same user and intent.
func (o Operation) Matches(userID string, kind OperationKind) error {
	if o.UserID != userID || o.Kind != kind {
		return fmt.Errorf("operation %s belongs to %s/%s", o.OperationID, o.UserID, o.Kind)
	}
	return nil
}
