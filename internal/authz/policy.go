package authz

import (
	"fmt"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/models"
)

// The authorization matrix lives here, and only here. Every service
// operation asks this package before touching the store. Decisions are
// stateless: current principal plus current entity, nothing else.
//
// Denials surface as 403, uniformly; they are never masked as 404.

// CanManageCategories gates category reads and mutations alike.
func CanManageCategories(p Principal) bool {
	return p.IsAdmin()
}

// CanReadTask allows admins and the task's current owner.
func CanReadTask(p Principal, t *models.Task) bool {
	return p.IsAdmin() || t.UserID == p.ID
}

// CanMutateTask allows admins and the task's current owner.
func CanMutateTask(p Principal, t *models.Task) bool {
	return p.IsAdmin() || t.UserID == p.ID
}

// CanManageUsers gates listing and deleting user accounts.
func CanManageUsers(p Principal) bool {
	return p.IsAdmin()
}

// CanAccessUser allows a user to read or update their own account, and
// admins to reach any account.
func CanAccessUser(p Principal, userID int64) bool {
	return p.IsAdmin() || p.ID == userID
}

// CanChangeRole gates role assignment; roles are immutable except by admins.
func CanChangeRole(p Principal) bool {
	return p.IsAdmin()
}

// ScopeTaskFilter narrows a search to the rows the principal may see. For a
// non-admin the owner criterion is pinned to the principal's own id; an
// explicit conflicting userId is rejected rather than silently overridden.
func ScopeTaskFilter(p Principal, f models.TaskFilter) (models.TaskFilter, error) {
	if p.IsAdmin() {
		return f, nil
	}
	if f.UserID != nil && *f.UserID != p.ID {
		return models.TaskFilter{}, fmt.Errorf("userId is restricted to your own account: %w", apperrors.ErrValidation)
	}
	uid := p.ID
	f.UserID = &uid
	return f, nil
}
