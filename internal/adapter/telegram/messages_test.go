package telegram

import (
	"errors"
	"testing"
	"time"

	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestFormatWithUSD(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		price    float64
		expected string
	}{
		{"whole dollars", 1500, 0.001, "1500 TKN ($1.50 USD)"},
		{"sub cent rounds", 5, 0.001, "5 TKN ($0.01 USD)"},
		{"zero", 0, 0.001, "0 TKN ($0.00 USD)"},
		{"large balance", 1000000, 0.001, "1000000 TKN ($1000.00 USD)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatWithUSD(tt.amount, "TKN", tt.price))
		})
	}
}

func TestConfirmationMessage(t *testing.T) {
	msg := confirmationMessage(&ports.RequestResult{
		Amount:   5000,
		Address:  "0x742d35cc6634c0532925a3b844bc454e4438f44e",
		Currency: "TKN",
	}, 0.001)

	assert.Contains(t, msg, "Withdrawal Confirmation")
	assert.Contains(t, msg, "5000 TKN ($5.00 USD)")
	assert.Contains(t, msg, "<code>0x742d35cc6634c0532925a3b844bc454e4438f44e</code>")
}

func TestSuccessMessage(t *testing.T) {
	msg := successMessage(&ports.ConfirmResult{
		Amount:      5000,
		Currency:    "TKN",
		TxHash:      "0xhash",
		ExplorerURL: "https://basescan.org/tx/0xhash",
	}, 0.001)

	assert.Contains(t, msg, "Withdrawal Successful")
	assert.Contains(t, msg, "<code>0xhash</code>")
	assert.Contains(t, msg, `<a href="https://basescan.org/tx/0xhash">BaseScan</a>`)
}

func TestHistoryMessage(t *testing.T) {
	created := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	records := []domain.Withdrawal{
		{Amount: 5000, Status: domain.WithdrawalStatusCompleted, CreatedAt: created},
		{Amount: 2000, Status: domain.WithdrawalStatusFailed, CreatedAt: created},
	}

	msg := historyMessage(records, "TKN", 0.001)
	assert.Contains(t, msg, "5000 TKN ($5.00 USD) (completed) 15 Aug 2026")
	assert.Contains(t, msg, "2000 TKN ($2.00 USD) (failed) 15 Aug 2026")
}

func TestHistoryMessage_Empty(t *testing.T) {
	msg := historyMessage(nil, "TKN", 0.001)
	assert.Contains(t, msg, "No withdrawals yet.")
}

func TestProfileMessage_NoWallet(t *testing.T) {
	user := &domain.User{Balance: 1500}
	msg := profileMessage(user, "TKN", 0.001)
	assert.Contains(t, msg, "<code>Not set</code>")
	assert.Contains(t, msg, "1500 TKN ($1.50 USD)")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedTitle string
	}{
		{"in progress", apperror.ErrWithdrawalInProgress(), "Withdrawal Already in Progress"},
		{"no address", apperror.ErrNoWalletAddress(), "No Wallet Address Set"},
		{"invalid address", apperror.ErrInvalidWalletAddress(), "Invalid Wallet Address"},
		{"below minimum", apperror.ErrBelowMinimum(300, 1000, "TKN"), "Minimum Withdrawal Not Met"},
		{"liquidity limit", apperror.ErrTemporaryLimit(), "Temporary Withdrawal Limit"},
		{"no pending", apperror.ErrNoPendingWithdrawal(), "No Pending Withdrawal"},
		{"already processing", apperror.ErrDuplicateConfirmation(), "Withdrawal Being Processed"},
		{"chain failure", apperror.ErrChainContractFailure(errors.New("revert")), "Withdrawal Failed"},
		{"plain error hides detail", errors.New("pg: connection refused"), "System Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := errorMessage(tt.err)
			assert.Contains(t, msg, tt.expectedTitle)
			assert.NotContains(t, msg, "connection refused")
		})
	}
}
