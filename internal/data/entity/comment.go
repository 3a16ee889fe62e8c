package entity

import (
	"github.com/google/uuid"
)

// Comment belongs to a provider movie (IMDb id) and a local user
type Comment struct {
	BaseSimple
	MovieID string    `db:"movie_id"`
	UserID  uuid.UUID `db:"user_id"`
	Body    string    `db:"body"`

	// Filled by joins, not a column of comments
	AuthorName string `db:"username"`
}
