package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a join record between a user and a post, meaning "this user has
// starred this post". At most one row may exist per (user_id, post_id) pair;
// the table enforces that with a unique index. A favorite is deleted outright
// when the user retracts it, never updated in place.
type Favorite struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	PostID    uuid.UUID `db:"post_id"`
	CreatedAt time.Time `db:"created_at"`
}
