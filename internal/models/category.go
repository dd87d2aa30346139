package models

// TaskCategory groups tasks. The relation is one-directional: tasks reference
// their category by id, the category never materializes its task set.
type TaskCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
