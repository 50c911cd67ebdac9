package service

import (
	"context"
	"errors"
	"testing"

	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userTestDeps struct {
	svc      *userService
	userRepo *mocks.MockUserRepository
	ctrl     *gomock.Controller
}

func setupUserService(t *testing.T) *userTestDeps {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	return &userTestDeps{
		svc:      NewUserService(userRepo, zerolog.Nop()).(*userService),
		userRepo: userRepo,
		ctrl:     ctrl,
	}
}

func TestUserService_EnsureUser_CreatesOnFirstContact(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	referrer := int64(98765)

	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(nil, nil)
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			assert.Equal(t, testTelegramID, u.TelegramID)
			assert.Equal(t, "earner", u.Username)
			require.NotNil(t, u.ReferredBy)
			assert.Equal(t, referrer, *u.ReferredBy)
			assert.NotEqual(t, uuid.Nil, u.ID)
			return nil
		})

	user, err := d.svc.EnsureUser(ctx, testTelegramID, "earner", &referrer)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(0), user.Balance)
}

func TestUserService_EnsureUser_ReturnsExisting(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	existing := eligibleUser()

	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(existing, nil)
	d.userRepo.EXPECT().TouchLastActive(ctx, existing.ID).Return(nil)

	user, err := d.svc.EnsureUser(ctx, testTelegramID, "earner", nil)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestUserService_EnsureUser_TouchFailureIsNotFatal(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	existing := eligibleUser()

	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(existing, nil)
	d.userRepo.EXPECT().TouchLastActive(ctx, existing.ID).Return(errors.New("db timeout"))

	user, err := d.svc.EnsureUser(ctx, testTelegramID, "earner", nil)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestUserService_SetWalletAddress_Success(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	existing := eligibleUser()

	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(existing, nil)
	d.userRepo.EXPECT().SetWalletAddress(ctx, existing.ID, testAddress).Return(nil)

	err := d.svc.SetWalletAddress(ctx, testTelegramID, testAddress)
	assert.NoError(t, err)
}

func TestUserService_SetWalletAddress_InvalidFormat(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	tests := []struct {
		name    string
		address string
	}{
		{"missing prefix", "742d35cc6634c0532925a3b844bc454e4438f44e"},
		{"too short", "0x742d35cc"},
		{"non hex chars", "0x742d35cc6634c0532925a3b844bc454e4438fzzz"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The repository is never touched for a malformed address.
			err := d.svc.SetWalletAddress(context.Background(), testTelegramID, tt.address)
			assertAppError(t, err, "WD_003")
		})
	}
}

func TestUserService_SetWalletAddress_UserNotFound(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(nil, nil)

	err := d.svc.SetWalletAddress(ctx, testTelegramID, testAddress)
	assertAppError(t, err, "USR_001")
}

func TestUserService_Profile(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	existing := eligibleUser()

	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(existing, nil)

	user, err := d.svc.Profile(ctx, testTelegramID)
	require.NoError(t, err)
	assert.Equal(t, existing.TelegramID, user.TelegramID)
}

func TestUserService_Profile_NotFound(t *testing.T) {
	d := setupUserService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.userRepo.EXPECT().GetByTelegramID(ctx, testTelegramID).Return(nil, nil)

	user, err := d.svc.Profile(ctx, testTelegramID)
	assert.Nil(t, user)
	assertAppError(t, err, "USR_001")
}
