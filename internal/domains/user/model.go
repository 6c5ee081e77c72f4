package user

import (
	"time"

	"github.com/google/uuid"
)

// User owns the points balance mutated only by the swap engine.
// Points never go negative; the column carries a CHECK constraint and
// every debit is guarded in SQL.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
