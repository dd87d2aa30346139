package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/authz"
	"tasktracker/internal/models"
)

func newCategoryFixture() (CategoryService, *fakeCategoryRepo, *fakeTaskRepo) {
	cats := newFakeCategoryRepo()
	tasks := newFakeTaskRepo()
	return NewCategoryService(cats, tasks), cats, tasks
}

var (
	catAdmin = authz.Principal{ID: 1, Role: authz.RoleAdmin}
	catUser  = authz.Principal{ID: 2, Role: authz.RoleUser}
)

func TestCategoryOps_DeniedForNonAdmin(t *testing.T) {
	svc, cats, _ := newCategoryFixture()
	seeded := &models.TaskCategory{Name: "Work"}
	if err := cats.Create(context.Background(), seeded); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx := context.Background()
	checks := map[string]error{}
	_, err := svc.Create(ctx, catUser, &models.TaskCategory{Name: "Home"})
	checks["create"] = err
	_, err = svc.GetByID(ctx, catUser, seeded.ID)
	checks["get"] = err
	_, err = svc.List(ctx, catUser)
	checks["list"] = err
	_, err = svc.Update(ctx, catUser, seeded.ID, &models.TaskCategory{Name: "Other"})
	checks["update"] = err
	checks["delete"] = svc.Delete(ctx, catUser, seeded.ID)

	for op, err := range checks {
		if !errors.Is(err, apperrors.ErrAccessDenied) {
			t.Fatalf("%s as USER: err = %v, want access denied", op, err)
		}
	}
}

func TestCategoryCreate_BlankNameRejected(t *testing.T) {
	svc, cats, _ := newCategoryFixture()
	_, err := svc.Create(context.Background(), catAdmin, &models.TaskCategory{Name: "  "})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(cats.categories) != 0 {
		t.Fatalf("invalid category persisted")
	}
}

func TestCategoryDelete_ConflictWhileTasksRemain(t *testing.T) {
	svc, cats, tasks := newCategoryFixture()
	ctx := context.Background()

	category, err := svc.Create(ctx, catAdmin, &models.TaskCategory{Name: "Work"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := tasks.Store(ctx, &models.Task{
		Name:       "Write report",
		Deadline:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CategoryID: category.ID,
		UserID:     2,
	}); err != nil {
		t.Fatalf("store task: %v", err)
	}

	err = svc.Delete(ctx, catAdmin, category.ID)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	// category and its task are untouched
	if got, _ := cats.GetByID(ctx, category.ID); got == nil {
		t.Fatalf("category deleted despite conflict")
	}
	if n, _ := tasks.CountByCategory(ctx, category.ID); n != 1 {
		t.Fatalf("task count changed: %d", n)
	}

	// once the task is gone the delete succeeds
	if err := tasks.Delete(ctx, 1); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := svc.Delete(ctx, catAdmin, category.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	_, err := svc.Update(context.Background(), catAdmin, 42, &models.TaskCategory{Name: "X"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
