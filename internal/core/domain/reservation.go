package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is an in-flight withdrawal awaiting user confirmation.
// It lives only in process memory; at most one exists per user.
type Reservation struct {
	UserID     uuid.UUID `json:"user_id"`
	TelegramID int64     `json:"telegram_id"`
	Amount     int64     `json:"amount"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExpiredAt reports whether the reservation has outlived ttl as of now.
func (r *Reservation) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.CreatedAt) >= ttl
}
