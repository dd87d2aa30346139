package services

import (
	"context"
	"fmt"
	"strings"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/authz"
	"tasktracker/internal/models"
	"tasktracker/internal/repositories"
)

type CategoryService interface {
	Create(ctx context.Context, p authz.Principal, category *models.TaskCategory) (*models.TaskCategory, error)
	GetByID(ctx context.Context, p authz.Principal, id int64) (*models.TaskCategory, error)
	List(ctx context.Context, p authz.Principal) ([]models.TaskCategory, error)
	Update(ctx context.Context, p authz.Principal, id int64, data *models.TaskCategory) (*models.TaskCategory, error)
	Delete(ctx context.Context, p authz.Principal, id int64) error
}

type categoryService struct {
	repo  repositories.CategoryRepository
	tasks repositories.TaskRepository
}

func NewCategoryService(repo repositories.CategoryRepository, tasks repositories.TaskRepository) CategoryService {
	return &categoryService{repo: repo, tasks: tasks}
}

func (s *categoryService) Create(ctx context.Context, p authz.Principal, category *models.TaskCategory) (*models.TaskCategory, error) {
	if !authz.CanManageCategories(p) {
		return nil, fmt.Errorf("categories: %w", apperrors.ErrAccessDenied)
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, p authz.Principal, id int64) (*models.TaskCategory, error) {
	if !authz.CanManageCategories(p) {
		return nil, fmt.Errorf("categories: %w", apperrors.ErrAccessDenied)
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, p authz.Principal) ([]models.TaskCategory, error) {
	if !authz.CanManageCategories(p) {
		return nil, fmt.Errorf("categories: %w", apperrors.ErrAccessDenied)
	}
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, p authz.Principal, id int64, data *models.TaskCategory) (*models.TaskCategory, error) {
	if !authz.CanManageCategories(p) {
		return nil, fmt.Errorf("categories: %w", apperrors.ErrAccessDenied)
	}
	if err := validateCategory(data); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
	}
	existing.Name = data.Name
	existing.Description = data.Description
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete refuses to remove a category that still has tasks. No cascade: the
// category and its tasks are left untouched on conflict.
func (s *categoryService) Delete(ctx context.Context, p authz.Principal, id int64) error {
	if !authz.CanManageCategories(p) {
		return fmt.Errorf("categories: %w", apperrors.ErrAccessDenied)
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("category %d: %w", id, apperrors.ErrNotFound)
	}
	n, err := s.tasks.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("category %d still has %d tasks: %w", id, n, apperrors.ErrConflict)
	}
	return s.repo.Delete(ctx, id)
}

func validateCategory(category *models.TaskCategory) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("category name must not be empty or contain only whitespace: %w", apperrors.ErrValidation)
	}
	return nil
}
