package ports

import (
	"context"
	"time"

	"token-earn-bot/internal/core/domain"

	"github.com/google/uuid"
)

// ConfirmClaimStore guards confirmation callbacks against duplicate delivery.
type ConfirmClaimStore interface {
	// Claim atomically records the callback id, returning true if this is
	// the first time it has been seen.
	Claim(ctx context.Context, callbackID string, ttl time.Duration) (bool, error)
}

// PendingRegistry tracks in-flight withdrawal reservations, one per user.
type PendingRegistry interface {
	// Reserve stores r unless the user already has a reservation.
	// Returns false if one exists.
	Reserve(r domain.Reservation) bool
	Get(userID uuid.UUID) (domain.Reservation, bool)
	// Acquire marks the user's reservation as executing and returns it.
	// Returns false if there is no reservation or it is already executing.
	// The reservation stays in the registry until Release.
	Acquire(userID uuid.UUID) (domain.Reservation, bool)
	// Cancel removes the user's reservation unless a confirmation is
	// executing it. Returns false while it is executing; cancelling an
	// absent reservation is a no-op and returns true.
	Cancel(userID uuid.UUID) bool
	// Release removes the user's reservation. Releasing an absent
	// reservation is a no-op.
	Release(userID uuid.UUID)
	Len() int
}

// --- Service Ports (Business Logic) ---

// RequestResult is the confirmation prompt payload for a reserved withdrawal.
type RequestResult struct {
	Amount   int64
	Address  string
	Currency string
}

// ConfirmResult is the outcome of an executed withdrawal.
type ConfirmResult struct {
	Amount      int64
	Address     string
	Currency    string
	TxHash      string
	ExplorerURL string
}

// WithdrawalService orchestrates the withdrawal state machine.
type WithdrawalService interface {
	// Request validates eligibility and reserves the user's full balance.
	Request(ctx context.Context, telegramID int64) (*RequestResult, error)
	// Confirm executes the reserved withdrawal on-chain and settles it.
	// callbackID deduplicates repeated deliveries of the same tap.
	Confirm(ctx context.Context, telegramID int64, callbackID string) (*ConfirmResult, error)
	// Cancel drops the reservation. Cancelling with no reservation is a no-op.
	Cancel(ctx context.Context, telegramID int64) error
	// History returns the user's most recent ledger records.
	History(ctx context.Context, telegramID int64, limit int) ([]domain.Withdrawal, error)
}

// UserService manages user bootstrap and profile updates.
type UserService interface {
	// EnsureUser fetches the user, creating the record on first contact.
	EnsureUser(ctx context.Context, telegramID int64, username string, referredBy *int64) (*domain.User, error)
	// SetWalletAddress validates and stores the payout address.
	SetWalletAddress(ctx context.Context, telegramID int64, address string) error
	Profile(ctx context.Context, telegramID int64) (*domain.User, error)
}
