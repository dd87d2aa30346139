package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

// selectTask joins the display names of the related rows so projection never
// needs extra round trips. LEFT JOIN keeps a task readable even if a
// referenced row is somehow gone.
const selectTask = `
	SELECT t.id, t.name, t.description, t.deadline, t.category_id, t.user_id,
	       c.name, u.username
	FROM tasks t
	LEFT JOIN task_categories c ON c.id = t.category_id
	LEFT JOIN users u ON u.id = t.user_id`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	const q = `
		INSERT INTO tasks (name, description, deadline, category_id, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		task.Name, task.Description, task.Deadline, task.CategoryID, task.UserID,
	).Scan(&task.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task name %q already exists: %w", task.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("store task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{}
	var categoryName, ownerName sql.NullString
	err := r.db.QueryRowContext(ctx, selectTask+` WHERE t.id = $1`, id).Scan(
		&task.ID, &task.Name, &task.Description, &task.Deadline,
		&task.CategoryID, &task.UserID, &categoryName, &ownerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	task.CategoryName = categoryName.String
	task.OwnerName = ownerName.String
	return task, nil
}

// buildTaskConditions translates the filter into WHERE fragments. It must
// select exactly the rows models.TaskFilter.Matches accepts.
func buildTaskConditions(filter models.TaskFilter) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Name != nil {
		conditions = append(conditions, fmt.Sprintf("t.name ILIKE $%d", argID))
		args = append(args, likePattern(*filter.Name))
		argID++
	}
	if filter.Description != nil {
		conditions = append(conditions, fmt.Sprintf("t.description ILIKE $%d", argID))
		args = append(args, likePattern(*filter.Description))
		argID++
	}
	if filter.Deadline != nil {
		conditions = append(conditions, fmt.Sprintf("t.deadline = $%d", argID))
		args = append(args, *filter.Deadline)
		argID++
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("t.category_id = $%d", argID))
		args = append(args, *filter.CategoryID)
		argID++
	}
	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("t.user_id = $%d", argID))
		args = append(args, *filter.UserID)
		argID++
	}
	return conditions, args
}

// likePattern wraps a search term for ILIKE, escaping the wildcard
// characters so the term is matched literally as a substring.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := selectTask
	conditions, args := buildTaskConditions(filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// stable insertion order when no explicit sort is requested
	query += " ORDER BY t.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var categoryName, ownerName sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Deadline,
			&t.CategoryID, &t.UserID, &categoryName, &ownerName,
		); err != nil {
			return nil, err
		}
		t.CategoryName = categoryName.String
		t.OwnerName = ownerName.String
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	const q = `
		UPDATE tasks SET name=$1, description=$2, deadline=$3, category_id=$4
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, q,
		task.Name, task.Description, task.Deadline, task.CategoryID, task.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task name %q already exists: %w", task.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *taskRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks by category: %w", err)
	}
	return n, nil
}
