package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.TaskCategory) error
	GetByID(ctx context.Context, id int64) (*models.TaskCategory, error)
	Update(ctx context.Context, category *models.TaskCategory) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.TaskCategory, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.TaskCategory) error {
	const q = `
		INSERT INTO task_categories (name, description)
		VALUES ($1,$2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q, category.Name, category.Description).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name %q already exists: %w", category.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.TaskCategory, error) {
	const q = `SELECT id, name, description FROM task_categories WHERE id=$1`
	var c models.TaskCategory
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.TaskCategory) error {
	const q = `UPDATE task_categories SET name=$1, description=$2 WHERE id=$3`
	if _, err := r.db.ExecContext(ctx, q, category.Name, category.Description, category.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name %q already exists: %w", category.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_categories WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.TaskCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM task_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var res []models.TaskCategory
	for rows.Next() {
		var c models.TaskCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *categoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM task_categories WHERE id=$1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return exists, nil
}
