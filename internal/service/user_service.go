package service

import (
	"context"
	"fmt"
	"time"

	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type userService struct {
	userRepo ports.UserRepository
	log      zerolog.Logger
}

// NewUserService creates a new user management service.
func NewUserService(userRepo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

// EnsureUser fetches the user, creating the record on first contact.
func (s *userService) EnsureUser(ctx context.Context, telegramID int64, username string, referredBy *int64) (*domain.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user != nil {
		if err := s.userRepo.TouchLastActive(ctx, user.ID); err != nil {
			s.log.Warn().Err(err).Int64("telegram_id", telegramID).Msg("failed to stamp last_active")
		}
		return user, nil
	}

	now := time.Now().UTC()
	user = &domain.User{
		ID:         uuid.New(),
		TelegramID: telegramID,
		Username:   username,
		ReferredBy: referredBy,
		LastActive: now,
		CreatedAt:  now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	s.log.Info().
		Int64("telegram_id", telegramID).
		Str("username", username).
		Msg("new user registered")
	return user, nil
}

// SetWalletAddress validates and stores the payout address.
func (s *userService) SetWalletAddress(ctx context.Context, telegramID int64, address string) error {
	if !domain.IsValidWalletAddress(address) {
		return apperror.ErrInvalidWalletAddress()
	}

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return apperror.ErrNotFound("user")
	}

	if err := s.userRepo.SetWalletAddress(ctx, user.ID, address); err != nil {
		return apperror.InternalError(fmt.Errorf("set wallet address: %w", err))
	}

	s.log.Info().Int64("telegram_id", telegramID).Str("address", address).Msg("wallet address updated")
	return nil
}

// Profile looks up the user.
func (s *userService) Profile(ctx context.Context, telegramID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}
	return user, nil
}
