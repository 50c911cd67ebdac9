package ports

import (
	"context"

	"token-earn-bot/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for users.
// Methods accepting pgx.Tx run inside the settle transaction.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	SetWalletAddress(ctx context.Context, id uuid.UUID, address string) error
	TouchLastActive(ctx context.Context, id uuid.UUID) error
	// IncrementBalance atomically applies delta to the user's balance.
	// A negative delta that would drive the balance below zero fails.
	IncrementBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error
	SetLastWithdrawal(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// WithdrawalRepository defines persistence for the append-only withdrawal ledger.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, withdrawal *domain.Withdrawal) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Withdrawal, error)
	GetStats(ctx context.Context) (*WithdrawalStats, error)
}

// WithdrawalStats holds aggregated ledger statistics for the operator API.
type WithdrawalStats struct {
	Total           int64  `json:"total"`
	Completed       int64  `json:"completed"`
	Failed          int64  `json:"failed"`
	Rejected        int64  `json:"rejected"`
	TotalPaidOut    int64  `json:"total_paid_out"` // sum of completed amounts
	LastProcessedAt *int64 `json:"last_processed_at,omitempty"`
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
