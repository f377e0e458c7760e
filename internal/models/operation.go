package models

import "time"

// Operation is a row of operations, the idempotency records.
type Operation struct {
	OperationID  string    `db:"operation_id"`
	UserID       string    `db:"user_id"`
	Kind         string    `db:"kind"`
	State        string    `db:"state"`
	Result       []byte    `db:"result"`        // JSONB, nullable
	ErrorCode    *string   `db:"error_code"`    // Nullable
	ErrorMessage *string   `db:"error_message"` // Nullable
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
