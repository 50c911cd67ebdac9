package postgres

import (
	"context"
	"errors"
	"fmt"

	"token-earn-bot/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrBalanceConstraint is returned when a balance decrement would drive
// the balance below zero, or the user row is missing.
var ErrBalanceConstraint = errors.New("balance update rejected")

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a new user record.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, telegram_id, username, wallet_address, balance, referred_by, profile_completed, last_withdrawal, last_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.TelegramID, u.Username, u.WalletAddress,
		u.Balance, u.ReferredBy, u.ProfileCompleted, u.LastWithdrawal,
		u.LastActive, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByTelegramID fetches a user by Telegram account id.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `SELECT id, telegram_id, username, wallet_address, balance, referred_by, profile_completed, last_withdrawal, last_active, created_at
		FROM users WHERE telegram_id = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.WalletAddress,
		&u.Balance, &u.ReferredBy, &u.ProfileCompleted, &u.LastWithdrawal,
		&u.LastActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by telegram_id: %w", err)
	}
	return u, nil
}

// SetWalletAddress stores the user's payout address.
func (r *UserRepo) SetWalletAddress(ctx context.Context, id uuid.UUID, address string) error {
	query := `UPDATE users SET wallet_address = $1, profile_completed = TRUE WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, address, id)
	if err != nil {
		return fmt.Errorf("set wallet address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// TouchLastActive stamps the user's last activity time.
func (r *UserRepo) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_active = NOW() WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("touch last_active: %w", err)
	}
	return nil
}

// IncrementBalance atomically applies delta to the user's balance within a
// database transaction. The WHERE guard keeps the balance non-negative; a
// decrement that would overdraw matches no row and fails.
func (r *UserRepo) IncrementBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error {
	query := `UPDATE users SET balance = balance + $1 WHERE id = $2 AND balance + $1 >= 0`

	tag, err := tx.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("increment balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s delta %d", ErrBalanceConstraint, id, delta)
	}
	return nil
}

// SetLastWithdrawal stamps the user's last successful withdrawal time
// within a database transaction.
func (r *UserRepo) SetLastWithdrawal(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `UPDATE users SET last_withdrawal = NOW() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set last_withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}
