package models

import (
	"strings"
	"time"
)

// TaskFilter is a sparse set of search criteria. Nil fields are absent; the
// effective predicate is the conjunction of the present ones, so the zero
// value matches every task.
type TaskFilter struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	CategoryID  *int64
	UserID      *int64
}

func (f TaskFilter) IsEmpty() bool {
	return f.Name == nil && f.Description == nil && f.Deadline == nil &&
		f.CategoryID == nil && f.UserID == nil
}

// Matches is the in-memory form of the filter predicate. The repository
// pushes the same criteria down as SQL; both evaluations must agree.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Name != nil && !containsFold(t.Name, *f.Name) {
		return false
	}
	if f.Description != nil && !containsFold(t.Description, *f.Description) {
		return false
	}
	if f.Deadline != nil && !t.Deadline.Equal(*f.Deadline) {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.UserID != nil && t.UserID != *f.UserID {
		return false
	}
	return true
}

// case-insensitive substring match
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
