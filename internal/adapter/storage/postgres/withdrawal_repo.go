package postgres

import (
	"context"
	"fmt"

	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WithdrawalRepo implements ports.WithdrawalRepository. The withdrawals
// table is append-only; records arrive already terminal.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

// Create inserts a terminal withdrawal record within a database transaction.
func (r *WithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("withdrawal record: %w", err)
	}

	query := `INSERT INTO withdrawals (id, user_id, amount, address, status, tx_hash, error, network_fee_wei, currency, created_at, processed_at, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.UserID, w.Amount, w.Address,
		w.Status, w.TxHash, w.Error, w.NetworkFeeWei,
		w.Currency, w.CreatedAt, w.ProcessedAt, w.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// ListByUser fetches the user's most recent withdrawal records.
func (r *WithdrawalRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Withdrawal, error) {
	query := `SELECT id, user_id, amount, address, status, tx_hash, error, network_fee_wei, currency, created_at, processed_at, attempted_at
		FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var out []domain.Withdrawal
	for rows.Next() {
		w := domain.Withdrawal{}
		err := rows.Scan(
			&w.ID, &w.UserID, &w.Amount, &w.Address,
			&w.Status, &w.TxHash, &w.Error, &w.NetworkFeeWei,
			&w.Currency, &w.CreatedAt, &w.ProcessedAt, &w.AttemptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return out, nil
}

// GetStats retrieves aggregated ledger statistics.
func (r *WithdrawalRepo) GetStats(ctx context.Context) (*ports.WithdrawalStats, error) {
	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COUNT(*) FILTER (WHERE status = 'FAILED') AS failed,
		COUNT(*) FILTER (WHERE status = 'REJECTED') AS rejected,
		COALESCE(SUM(amount) FILTER (WHERE status = 'COMPLETED'), 0) AS paid_out,
		EXTRACT(EPOCH FROM MAX(processed_at))::BIGINT AS last_processed
		FROM withdrawals`

	stats := &ports.WithdrawalStats{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Completed, &stats.Failed, &stats.Rejected,
		&stats.TotalPaidOut, &stats.LastProcessedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get withdrawal stats: %w", err)
	}
	return stats, nil
}
