package model

import "time"

// Task mirrors a row of the `tasks` table. Every task belongs to
// exactly one user and is only ever visible to that user.
type Task struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"-"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
