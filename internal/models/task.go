package models

import "time"

// MaxTaskNameLen is the upper bound on task names.
const MaxTaskNameLen = 100

// Task is the internal task record. Category and owner are held by id only;
// the display names are filled in by the repository from joins and may be
// empty if the referenced row is gone. External responses never carry a Task
// directly, only a TaskView.
type Task struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	CategoryID  int64     `json:"category_id"`
	UserID      int64     `json:"user_id"`

	CategoryName string `json:"-"`
	OwnerName    string `json:"-"`
}

// TaskView is the flat output shape of a task: related entities are reduced
// to their display names, credentials and internal ids of the owner are
// never included.
type TaskView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Deadline     time.Time `json:"deadline"`
	CategoryName string    `json:"category_name,omitempty"`
	OwnerName    string    `json:"user_name,omitempty"`
}

// NewTaskView projects a task for external exposure. Missing category or
// owner names stay empty and are omitted from the JSON output.
func NewTaskView(t *Task) TaskView {
	return TaskView{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Deadline:     t.Deadline,
		CategoryName: t.CategoryName,
		OwnerName:    t.OwnerName,
	}
}

// NewTaskViews projects a slice, returning an empty (non-nil) slice for
// empty input so list endpoints serialize as [].
func NewTaskViews(tasks []Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, NewTaskView(&tasks[i]))
	}
	return views
}
