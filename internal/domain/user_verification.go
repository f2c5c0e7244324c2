package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserVerification is the one-time email confirmation code issued at sign-up.
// Attempts counts failed code entries; after too many the code is unusable.
type UserVerification struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	Email       string     `db:"email"`
	Code        string     `db:"code"`
	Attempts    int        `db:"attempts"`
	Confirmed   bool       `db:"confirmed"`
	ConfirmedAt *time.Time `db:"confirmed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
