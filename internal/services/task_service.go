package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

// TaskService is the core of the system: it applies the access policy,
// validates input, resolves the search criteria and reads through the store.
// It never mutates related entities, only tasks.
type TaskService interface {
	Create(ctx context.Context, p authz.Principal, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, p authz.Principal, id int64) (*models.Task, error)
	Search(ctx context.Context, p authz.Principal, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, p authz.Principal, id int64, data *models.Task) (*models.Task, error)
	Delete(ctx context.Context, p authz.Principal, id int64) error
}

type taskService struct {
	repo       repositories.TaskRepository
	categories repositories.CategoryRepository
	users      repositories.UserRepository
}

func NewTaskService(
	repo repositories.TaskRepository,
	categories repositories.CategoryRepository,
	users repositories.UserRepository,
) TaskService {
	return &taskService{repo: repo, categories: categories, users: users}
}

// Create stores a new task. The owner is always the requesting principal;
// owner ids supplied by the caller are never trusted.
func (s *taskService) Create(ctx context.Context, p authz.Principal, task *models.Task) (*models.Task, error) {
	task.UserID = p.ID

	if err := s.validate(ctx, task); err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	// re-read to pick up the joined display names
	return s.repo.FindByID(ctx, task.ID)
}

func (s *taskService) GetByID(ctx context.Context, p authz.Principal, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %d: %w", id, apperrors.ErrNotFound)
	}
	if !authz.CanReadTask(p, task) {
		return nil, fmt.Errorf("task %d: %w", id, apperrors.ErrAccessDenied)
	}
	return task, nil
}

// Search narrows the filter through the access policy, resolves an explicit
// userId against the user store, then pushes the predicate into the
// repository. An empty filter degenerates to a plain listing.
func (s *taskService) Search(ctx context.Context, p authz.Principal, filter models.TaskFilter) ([]models.Task, error) {
	scoped, err := authz.ScopeTaskFilter(p, filter)
	if err != nil {
		return nil, err
	}
	// Only an explicitly supplied userId is resolved; the id the policy
	// pinned for a restricted principal is its own and always exists.
	if filter.UserID != nil {
		exists, err := s.users.ExistsByID(*filter.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("user %d: %w", *filter.UserID, apperrors.ErrNotFound)
		}
	}
	return s.repo.FindAll(ctx, scoped)
}

func (s *taskService) Update(ctx context.Context, p authz.Principal, id int64, data *models.Task) (*models.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("task %d: %w", id, apperrors.ErrNotFound)
	}
	if !authz.CanMutateTask(p, existing) {
		return nil, fmt.Errorf("task %d: %w", id, apperrors.ErrAccessDenied)
	}

	existing.Name = data.Name
	existing.Description = data.Description
	existing.Deadline = data.Deadline
	existing.CategoryID = data.CategoryID
	// owner stays as it is; tasks are not reassignable

	if err := s.validate(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, p authz.Principal, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("task %d: %w", id, apperrors.ErrNotFound)
	}
	if !authz.CanMutateTask(p, existing) {
		return fmt.Errorf("task %d: %w", id, apperrors.ErrAccessDenied)
	}
	return s.repo.Delete(ctx, id)
}

// validate runs every check before any write is attempted.
func (s *taskService) validate(ctx context.Context, task *models.Task) error {
	if strings.TrimSpace(task.Name) == "" {
		return fmt.Errorf("task name must be provided: %w", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(task.Name) > models.MaxTaskNameLen {
		return fmt.Errorf("task name cannot exceed %d characters: %w", models.MaxTaskNameLen, apperrors.ErrValidation)
	}
	if task.Deadline.IsZero() {
		return fmt.Errorf("task deadline must be provided: %w", apperrors.ErrValidation)
	}
	if task.CategoryID == 0 {
		return fmt.Errorf("task category must be provided: %w", apperrors.ErrValidation)
	}
	exists, err := s.categories.ExistsByID(ctx, task.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("category %d: %w", task.CategoryID, apperrors.ErrNotFound)
	}
	return nil
}
