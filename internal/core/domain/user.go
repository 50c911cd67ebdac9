package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// walletAddressRe matches a 20-byte hex address with 0x prefix.
var walletAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsValidWalletAddress reports whether s is a syntactically valid
// EVM wallet address.
func IsValidWalletAddress(s string) bool {
	return walletAddressRe.MatchString(s)
}

// User represents a bot participant earning tokens.
type User struct {
	ID               uuid.UUID  `json:"id"`
	TelegramID       int64      `json:"telegram_id"`
	Username         string     `json:"username,omitempty"`
	WalletAddress    *string    `json:"wallet_address,omitempty"`
	Balance          int64      `json:"balance"` // Smallest display unit, never negative
	ReferredBy       *int64     `json:"referred_by,omitempty"`
	ProfileCompleted bool       `json:"profile_completed"`
	LastWithdrawal   *time.Time `json:"last_withdrawal,omitempty"`
	LastActive       time.Time  `json:"last_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HasWalletAddress returns true if the user has set a payout address.
func (u *User) HasWalletAddress() bool {
	return u.WalletAddress != nil && *u.WalletAddress != ""
}
