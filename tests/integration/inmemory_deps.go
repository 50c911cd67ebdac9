package integration

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.TelegramID == u.TelegramID {
			return fmt.Errorf("telegram id already exists")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *inMemoryUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepo) SetWalletAddress(ctx context.Context, id uuid.UUID, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.WalletAddress = &address
	u.ProfileCompleted = true
	return nil
}

func (r *inMemoryUserRepo) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.LastActive = time.Now().UTC()
	return nil
}

func (r *inMemoryUserRepo) IncrementBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	if u.Balance+delta < 0 {
		return fmt.Errorf("balance update rejected")
	}
	u.Balance += delta
	return nil
}

func (r *inMemoryUserRepo) SetLastWithdrawal(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	now := time.Now().UTC()
	u.LastWithdrawal = &now
	return nil
}

func (r *inMemoryUserRepo) balance(id uuid.UUID) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id].Balance
}

// --- In-Memory Withdrawal Repo ---

type inMemoryWithdrawalRepo struct {
	mu      sync.RWMutex
	records []domain.Withdrawal
}

func newInMemoryWithdrawalRepo() *inMemoryWithdrawalRepo {
	return &inMemoryWithdrawalRepo{}
}

func (r *inMemoryWithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Withdrawal) error {
	if err := w.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *w)
	return nil
}

func (r *inMemoryWithdrawalRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Withdrawal
	for i := len(r.records) - 1; i >= 0 && len(result) < limit; i-- {
		if r.records[i].UserID == userID {
			result = append(result, r.records[i])
		}
	}
	return result, nil
}

func (r *inMemoryWithdrawalRepo) GetStats(ctx context.Context) (*ports.WithdrawalStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.WithdrawalStats{}
	for _, w := range r.records {
		stats.Total++
		switch w.Status {
		case domain.WithdrawalStatusCompleted:
			stats.Completed++
			stats.TotalPaidOut += w.Amount
		case domain.WithdrawalStatusFailed:
			stats.Failed++
		case domain.WithdrawalStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (r *inMemoryWithdrawalRepo) byStatus(status domain.WithdrawalStatus) []domain.Withdrawal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Withdrawal
	for _, w := range r.records {
		if w.Status == status {
			result = append(result, w)
		}
	}
	return result
}

// --- Fake Wallet Gateway ---

type fakeGateway struct {
	mu           sync.Mutex
	tokenBalance int64
	transferErr  error
	transfers    int
	transferGate chan struct{} // when set, TransferTokens parks here
	transferBusy chan struct{} // signalled when a transfer starts
}

func newFakeGateway(tokenBalance int64) *fakeGateway {
	return &fakeGateway{tokenBalance: tokenBalance}
}

func (g *fakeGateway) TokenBalance(ctx context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tokenBalance, nil
}

func (g *fakeGateway) FullBalances(ctx context.Context) (*ports.WalletStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &ports.WalletStatus{
		Address:      "0xf0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0",
		NativeWei:    big.NewInt(5000000000000),
		TokenBalance: g.tokenBalance,
	}, nil
}

func (g *fakeGateway) TransferTokens(ctx context.Context, to string, amount int64) (*ports.TransferReceipt, error) {
	g.mu.Lock()
	gate, busy := g.transferGate, g.transferBusy
	g.mu.Unlock()
	if busy != nil {
		select {
		case busy <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.transferErr != nil {
		return nil, g.transferErr
	}
	g.transfers++
	g.tokenBalance -= amount
	hash := fmt.Sprintf("0xfaketx%04d", g.transfers)
	return &ports.TransferReceipt{
		TxHash:      hash,
		ExplorerURL: "https://basescan.org/tx/" + hash,
		GasUsed:     52000,
		GasCostWei:  big.NewInt(5200000000000),
	}, nil
}

func (g *fakeGateway) transferCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transfers
}

func (g *fakeGateway) setTransferErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transferErr = err
}

// holdTransfers parks every transfer until release is called. The returned
// channel fires once a transfer has entered the gateway.
func (g *fakeGateway) holdTransfers() (started chan struct{}, release func()) {
	gate := make(chan struct{})
	started = make(chan struct{}, 1)
	g.mu.Lock()
	g.transferGate = gate
	g.transferBusy = started
	g.mu.Unlock()
	return started, func() { close(gate) }
}

func (g *fakeGateway) setTokenBalance(balance int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokenBalance = balance
}

// --- In-Memory Confirm Claim Store ---

type inMemoryClaimStore struct {
	mu     sync.Mutex
	claims map[string]struct{}
}

func newInMemoryClaimStore() *inMemoryClaimStore {
	return &inMemoryClaimStore{claims: make(map[string]struct{})}
}

func (s *inMemoryClaimStore) Claim(ctx context.Context, callbackID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[callbackID]; ok {
		return false, nil
	}
	s.claims[callbackID] = struct{}{}
	return true, nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
