package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus represents the recorded outcome of a withdrawal.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved  WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected  WithdrawalStatus = "REJECTED"
	WithdrawalStatusCompleted WithdrawalStatus = "COMPLETED"
	WithdrawalStatusFailed    WithdrawalStatus = "FAILED"
)

// Withdrawal is an append-only ledger record. Records are written once,
// already in a terminal state, and never updated.
type Withdrawal struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	Amount        int64            `json:"amount"` // Smallest display unit
	Address       string           `json:"address"`
	Status        WithdrawalStatus `json:"status"`
	TxHash        *string          `json:"tx_hash,omitempty"` // Set iff COMPLETED
	Error         *string          `json:"error,omitempty"`   // Set iff FAILED or REJECTED
	NetworkFeeWei *string          `json:"network_fee_wei,omitempty"`
	Currency      string           `json:"currency"`
	CreatedAt     time.Time        `json:"created_at"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
	AttemptedAt   *time.Time       `json:"attempted_at,omitempty"`
}

// IsTerminal returns true if the record is in a final state.
func (w *Withdrawal) IsTerminal() bool {
	return w.Status == WithdrawalStatusCompleted ||
		w.Status == WithdrawalStatusFailed ||
		w.Status == WithdrawalStatusRejected
}

var (
	ErrMissingTxHash = errors.New("completed withdrawal requires a tx hash")
	ErrMissingReason = errors.New("failed or rejected withdrawal requires an error reason")
)

// Validate checks the terminal-record invariants before the record is
// written to the ledger.
func (w *Withdrawal) Validate() error {
	switch w.Status {
	case WithdrawalStatusCompleted:
		if w.TxHash == nil || *w.TxHash == "" {
			return ErrMissingTxHash
		}
	case WithdrawalStatusFailed, WithdrawalStatusRejected:
		if w.Error == nil || *w.Error == "" {
			return ErrMissingReason
		}
	}
	return nil
}
