package authz

import (
	"errors"
	"testing"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/models"
)

var (
	admin = Principal{ID: 1, Role: RoleAdmin}
	alice = Principal{ID: 2, Role: RoleUser}
	bob   = Principal{ID: 3, Role: RoleUser}
)

func TestCategoryManagement_AdminOnly(t *testing.T) {
	if !CanManageCategories(admin) {
		t.Fatalf("admin must manage categories")
	}
	if CanManageCategories(alice) {
		t.Fatalf("user must not manage categories")
	}
}

func TestTaskAccess_OwnerOrAdmin(t *testing.T) {
	task := &models.Task{ID: 10, UserID: alice.ID}

	for _, tc := range []struct {
		name    string
		p       Principal
		canRead bool
	}{
		{"admin", admin, true},
		{"owner", alice, true},
		{"other user", bob, false},
	} {
		if got := CanReadTask(tc.p, task); got != tc.canRead {
			t.Fatalf("%s: CanReadTask=%v, want %v", tc.name, got, tc.canRead)
		}
		if got := CanMutateTask(tc.p, task); got != tc.canRead {
			t.Fatalf("%s: CanMutateTask=%v, want %v", tc.name, got, tc.canRead)
		}
	}
}

func TestUserAccess(t *testing.T) {
	if !CanAccessUser(alice, alice.ID) {
		t.Fatalf("user must access own account")
	}
	if CanAccessUser(alice, bob.ID) {
		t.Fatalf("user must not access another account")
	}
	if !CanAccessUser(admin, bob.ID) {
		t.Fatalf("admin must access any account")
	}
	if CanManageUsers(alice) || CanChangeRole(alice) {
		t.Fatalf("user must not manage accounts or roles")
	}
	if !CanManageUsers(admin) || !CanChangeRole(admin) {
		t.Fatalf("admin must manage accounts and roles")
	}
}

func TestScopeTaskFilter_AdminPassesThrough(t *testing.T) {
	other := bob.ID
	f := models.TaskFilter{UserID: &other}
	scoped, err := ScopeTaskFilter(admin, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scoped.UserID == nil || *scoped.UserID != other {
		t.Fatalf("admin filter was narrowed: %+v", scoped)
	}
}

func TestScopeTaskFilter_UserGetsPinnedToSelf(t *testing.T) {
	scoped, err := ScopeTaskFilter(alice, models.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scoped.UserID == nil || *scoped.UserID != alice.ID {
		t.Fatalf("user filter not pinned to own id: %+v", scoped)
	}

	// asking for your own id explicitly is fine
	self := alice.ID
	scoped, err = ScopeTaskFilter(alice, models.TaskFilter{UserID: &self})
	if err != nil {
		t.Fatalf("own id rejected: %v", err)
	}
	if *scoped.UserID != alice.ID {
		t.Fatalf("own id changed: %+v", scoped)
	}
}

func TestScopeTaskFilter_ForeignUserIDRejected(t *testing.T) {
	other := bob.ID
	_, err := ScopeTaskFilter(alice, models.TaskFilter{UserID: &other})
	if err == nil {
		t.Fatalf("expected error for foreign userId")
	}
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
