package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"token-earn-bot/config"
	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WithdrawalServiceImpl implements ports.WithdrawalService. It drives the
// request -> confirm -> execute -> settle state machine; the ledger only
// ever sees terminal records.
type WithdrawalServiceImpl struct {
	userRepo   ports.UserRepository
	wdRepo     ports.WithdrawalRepository
	gateway    ports.WalletGateway
	registry   ports.PendingRegistry
	claims     ports.ConfirmClaimStore
	transactor ports.DBTransactor
	cfg        config.WithdrawalConfig
	log        zerolog.Logger
}

// NewWithdrawalService creates a new WithdrawalServiceImpl.
func NewWithdrawalService(
	userRepo ports.UserRepository,
	wdRepo ports.WithdrawalRepository,
	gateway ports.WalletGateway,
	registry ports.PendingRegistry,
	claims ports.ConfirmClaimStore,
	transactor ports.DBTransactor,
	cfg config.WithdrawalConfig,
	log zerolog.Logger,
) *WithdrawalServiceImpl {
	return &WithdrawalServiceImpl{
		userRepo:   userRepo,
		wdRepo:     wdRepo,
		gateway:    gateway,
		registry:   registry,
		claims:     claims,
		transactor: transactor,
		cfg:        cfg,
		log:        log,
	}
}

// Request validates eligibility and reserves the user's full balance.
// The amount is fixed here; earnings that land between request and confirm
// are not included in this withdrawal.
func (s *WithdrawalServiceImpl) Request(ctx context.Context, telegramID int64) (*ports.RequestResult, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}

	if _, exists := s.registry.Get(user.ID); exists {
		return nil, apperror.ErrWithdrawalInProgress()
	}
	if !user.HasWalletAddress() {
		return nil, apperror.ErrNoWalletAddress()
	}
	if !domain.IsValidWalletAddress(*user.WalletAddress) {
		return nil, apperror.ErrInvalidWalletAddress()
	}
	if user.Balance < s.cfg.Minimum {
		return nil, apperror.ErrBelowMinimum(user.Balance, s.cfg.Minimum, s.cfg.Currency)
	}

	available, err := s.availableBalance(ctx)
	if err != nil {
		return nil, err
	}
	if available < user.Balance {
		s.log.Warn().
			Int64("telegram_id", telegramID).
			Int64("requested", user.Balance).
			Int64("available", available).
			Msg("withdrawal request exceeds hot wallet liquidity")
		return nil, apperror.ErrTemporaryLimit()
	}

	reserved := s.registry.Reserve(domain.Reservation{
		UserID:     user.ID,
		TelegramID: telegramID,
		Amount:     user.Balance,
		Address:    *user.WalletAddress,
		CreatedAt:  time.Now().UTC(),
	})
	if !reserved {
		// A concurrent request won the race between the Get above and here.
		return nil, apperror.ErrWithdrawalInProgress()
	}

	s.log.Info().
		Int64("telegram_id", telegramID).
		Int64("amount", user.Balance).
		Str("address", *user.WalletAddress).
		Msg("withdrawal reserved")

	return &ports.RequestResult{
		Amount:   user.Balance,
		Address:  *user.WalletAddress,
		Currency: s.cfg.Currency,
	}, nil
}

// Confirm executes the reserved withdrawal on-chain and settles it. The
// callback id is claimed before anything else so a double tap cannot run
// the transfer twice. The ledger record is always written before the
// reservation is released.
func (s *WithdrawalServiceImpl) Confirm(ctx context.Context, telegramID int64, callbackID string) (*ports.ConfirmResult, error) {
	first, err := s.claims.Claim(ctx, callbackID, s.cfg.ClaimTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("callback_id", callbackID).Msg("claim store error, allowing confirmation")
	} else if !first {
		return nil, apperror.ErrDuplicateConfirmation()
	}

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}

	reservation, ok := s.registry.Acquire(user.ID)
	if !ok {
		// A reservation that exists but cannot be acquired is being
		// executed by a racing confirm; report that, not expiry.
		if _, found := s.registry.Get(user.ID); found {
			return nil, apperror.ErrDuplicateConfirmation()
		}
		return nil, apperror.ErrNoPendingWithdrawal()
	}

	// Liquidity re-check: the wallet may have drained since the request.
	available, err := s.availableBalance(ctx)
	if err != nil || available < reservation.Amount {
		s.rejectReservation(ctx, user.ID, reservation, "Hot wallet liquidity below reserved amount at confirmation")
		return nil, apperror.ErrTemporaryLimit()
	}

	receipt, err := s.gateway.TransferTokens(ctx, reservation.Address, reservation.Amount)
	if err != nil {
		s.failReservation(ctx, user.ID, reservation, err)
		return nil, err
	}

	if err := s.settle(ctx, user.ID, reservation, receipt); err != nil {
		// The tokens are on-chain but the settle transaction failed. The
		// reservation stays released so the user is not stuck; the gap
		// needs manual reconciliation against the tx hash.
		s.log.Error().Err(err).
			Str("tx_hash", receipt.TxHash).
			Int64("telegram_id", telegramID).
			Int64("amount", reservation.Amount).
			Msg("transfer mined but settlement failed, manual reconciliation required")
	}
	s.registry.Release(user.ID)

	s.log.Info().
		Int64("telegram_id", telegramID).
		Int64("amount", reservation.Amount).
		Str("tx_hash", receipt.TxHash).
		Msg("withdrawal completed")

	return &ports.ConfirmResult{
		Amount:      reservation.Amount,
		Address:     reservation.Address,
		Currency:    s.cfg.Currency,
		TxHash:      receipt.TxHash,
		ExplorerURL: receipt.ExplorerURL,
	}, nil
}

// Cancel drops the user's reservation. Cancelling with no reservation is a
// no-op; nothing is recorded either way. A reservation held by an
// executing confirmation cannot be cancelled until that confirmation
// releases it.
func (s *WithdrawalServiceImpl) Cancel(ctx context.Context, telegramID int64) error {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return apperror.ErrNotFound("user")
	}

	if !s.registry.Cancel(user.ID) {
		return apperror.ErrDuplicateConfirmation()
	}
	s.log.Info().Int64("telegram_id", telegramID).Msg("withdrawal cancelled")
	return nil
}

// History returns the user's most recent ledger records.
func (s *WithdrawalServiceImpl) History(ctx context.Context, telegramID int64, limit int) ([]domain.Withdrawal, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}

	records, err := s.wdRepo.ListByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return records, nil
}

// availableBalance probes the hot wallet token balance. The quick check is
// cheap but unreliable; a zero or an error falls back to the full fetch.
func (s *WithdrawalServiceImpl) availableBalance(ctx context.Context) (int64, error) {
	quick, err := s.gateway.TokenBalance(ctx)
	if err == nil && quick > 0 {
		return quick, nil
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("quick balance check failed, fetching full balances")
	}

	status, err := s.gateway.FullBalances(ctx)
	if err != nil {
		return 0, apperror.ErrChainRPCFailure(fmt.Errorf("fetch wallet balances: %w", err))
	}
	return status.TokenBalance, nil
}

// settle persists the outcome of a successful transfer: the completed
// ledger record, the balance debit, and the last-withdrawal stamp, all in
// one database transaction.
func (s *WithdrawalServiceImpl) settle(ctx context.Context, userID uuid.UUID, r domain.Reservation, receipt *ports.TransferReceipt) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	txHash := receipt.TxHash
	feeWei := strconv.FormatInt(s.cfg.NetworkFeeWei, 10)
	if receipt.GasCostWei != nil {
		feeWei = receipt.GasCostWei.String()
	}

	record := &domain.Withdrawal{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        r.Amount,
		Address:       r.Address,
		Status:        domain.WithdrawalStatusCompleted,
		TxHash:        &txHash,
		NetworkFeeWei: &feeWei,
		Currency:      s.cfg.Currency,
		CreatedAt:     r.CreatedAt,
		ProcessedAt:   &now,
	}
	if err := s.wdRepo.Create(ctx, dbTx, record); err != nil {
		return fmt.Errorf("create withdrawal record: %w", err)
	}

	if err := s.userRepo.IncrementBalance(ctx, dbTx, userID, -r.Amount); err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if err := s.userRepo.SetLastWithdrawal(ctx, dbTx, userID); err != nil {
		return fmt.Errorf("stamp last withdrawal: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// rejectReservation writes a REJECTED record for a soft decline and drops
// the reservation. The balance is untouched.
func (s *WithdrawalServiceImpl) rejectReservation(ctx context.Context, userID uuid.UUID, r domain.Reservation, reason string) {
	now := time.Now().UTC()
	record := &domain.Withdrawal{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      r.Amount,
		Address:     r.Address,
		Status:      domain.WithdrawalStatusRejected,
		Error:       &reason,
		Currency:    s.cfg.Currency,
		CreatedAt:   r.CreatedAt,
		AttemptedAt: &now,
	}
	s.writeTerminalRecord(ctx, record)
	s.registry.Release(userID)
}

// failReservation writes a FAILED record after a transfer error and drops
// the reservation. Only the error category is recorded, never raw node
// output.
func (s *WithdrawalServiceImpl) failReservation(ctx context.Context, userID uuid.UUID, r domain.Reservation, transferErr error) {
	reason := "Withdrawal failed. Please try again later."
	if appErr, ok := transferErr.(*apperror.AppError); ok {
		reason = appErr.Message
	}

	now := time.Now().UTC()
	record := &domain.Withdrawal{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      r.Amount,
		Address:     r.Address,
		Status:      domain.WithdrawalStatusFailed,
		Error:       &reason,
		Currency:    s.cfg.Currency,
		CreatedAt:   r.CreatedAt,
		AttemptedAt: &now,
	}
	s.writeTerminalRecord(ctx, record)
	s.registry.Release(userID)
}

// writeTerminalRecord persists a terminal record in its own transaction.
// Ledger write failures are logged but never block releasing the user.
func (s *WithdrawalServiceImpl) writeTerminalRecord(ctx context.Context, record *domain.Withdrawal) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("status", string(record.Status)).Msg("begin tx for terminal record failed")
		return
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.wdRepo.Create(ctx, dbTx, record); err != nil {
		s.log.Error().Err(err).Str("status", string(record.Status)).Msg("terminal withdrawal record write failed")
		return
	}
	if err := dbTx.Commit(ctx); err != nil {
		s.log.Error().Err(err).Str("status", string(record.Status)).Msg("terminal withdrawal record commit failed")
	}
}
