package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("WD_001", "Withdrawal in progress", http.StatusConflict),
			expected: "[WD_001] Withdrawal in progress",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("WD_004", "test", http.StatusUnprocessableEntity)
	assert.Nil(t, appErr.Unwrap())
}

func TestWithdrawalErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"WithdrawalInProgress", ErrWithdrawalInProgress(), "WD_001", 409},
		{"NoWalletAddress", ErrNoWalletAddress(), "WD_002", 422},
		{"InvalidWalletAddress", ErrInvalidWalletAddress(), "WD_003", 422},
		{"BelowMinimum", ErrBelowMinimum(300, 1000, "TKN"), "WD_004", 422},
		{"TemporaryLimit", ErrTemporaryLimit(), "WD_005", 503},
		{"NoPendingWithdrawal", ErrNoPendingWithdrawal(), "WD_006", 404},
		{"DuplicateConfirmation", ErrDuplicateConfirmation(), "WD_007", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestBelowMinimumShortfall(t *testing.T) {
	err := ErrBelowMinimum(300, 1000, "TKN")
	assert.Contains(t, err.Message, "1000 TKN")
	assert.Contains(t, err.Message, "700 more TKN")
}

func TestChainErrors(t *testing.T) {
	inner := fmt.Errorf("execution reverted")
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientTokens", ErrChainInsufficientTokens(inner), "CHAIN_001", 503},
		{"InsufficientGas", ErrChainInsufficientGas(inner), "CHAIN_002", 503},
		{"ContractFailure", ErrChainContractFailure(inner), "CHAIN_003", 502},
		{"GasFailure", ErrChainGasFailure(inner), "CHAIN_004", 502},
		{"InvalidRecipient", ErrChainInvalidRecipient(), "CHAIN_005", 422},
		{"RPCFailure", ErrChainRPCFailure(inner), "CHAIN_006", 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("User")
	assert.Contains(t, err.Message, "User")
	assert.Equal(t, "USR_001", err.Code)
}
