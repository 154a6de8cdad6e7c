package domain

import "time"

// Task is a to-do item owned by exactly one user. UserID is set from the
// authenticated identity at creation and never from client input.
type Task struct {
	ID        string
	UserID    string
	Text      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch carries the mutable fields of an update. Nil fields are left
// unchanged.
type TaskPatch struct {
	Text      *string
	Completed *bool
}
