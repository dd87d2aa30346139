package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string    { return &s }
func idPtr(id int64) *int64      { return &id }
func tPtr(t time.Time) *time.Time { return &t }

func sampleTasks() []Task {
	deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []Task{
		{ID: 1, Name: "Write report", Description: "Quarterly summary", Deadline: deadline, CategoryID: 10, UserID: 100},
		{ID: 2, Name: "Budget Plan", Description: "Annual budget", Deadline: deadline.Add(24 * time.Hour), CategoryID: 10, UserID: 101},
		{ID: 3, Name: "Deploy service", Description: "report rollout", Deadline: deadline, CategoryID: 11, UserID: 100},
	}
}

func matchingIDs(tasks []Task, f TaskFilter) []int64 {
	var ids []int64
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			ids = append(ids, tasks[i].ID)
		}
	}
	return ids
}

func TestTaskFilter_EmptyMatchesEverything(t *testing.T) {
	tasks := sampleTasks()
	f := TaskFilter{}
	if !f.IsEmpty() {
		t.Fatalf("zero filter should be empty")
	}
	got := matchingIDs(tasks, f)
	if len(got) != len(tasks) {
		t.Fatalf("empty filter matched %d of %d tasks", len(got), len(tasks))
	}
}

func TestTaskFilter_NameSubstringCaseInsensitive(t *testing.T) {
	tasks := sampleTasks()

	got := matchingIDs(tasks, TaskFilter{Name: strPtr("rep")})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("name=rep: expected [1], got %v", got)
	}

	// different case still matches
	got = matchingIDs(tasks, TaskFilter{Name: strPtr("WRITE")})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("name=WRITE: expected [1], got %v", got)
	}

	// "Budget Plan" must not match "rep"
	f := TaskFilter{Name: strPtr("rep")}
	if f.Matches(&tasks[1]) {
		t.Fatalf("%q unexpectedly matched substring %q", tasks[1].Name, "rep")
	}
}

func TestTaskFilter_DescriptionSubstring(t *testing.T) {
	tasks := sampleTasks()
	got := matchingIDs(tasks, TaskFilter{Description: strPtr("Report")})
	// matches "report rollout" case-insensitively, not "Quarterly summary"
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("description=Report: expected [3], got %v", got)
	}
}

func TestTaskFilter_DeadlineExactMatch(t *testing.T) {
	tasks := sampleTasks()
	deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := matchingIDs(tasks, TaskFilter{Deadline: tPtr(deadline)})
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("deadline exact: expected [1 3], got %v", got)
	}

	// one second off must not match
	got = matchingIDs(tasks, TaskFilter{Deadline: tPtr(deadline.Add(time.Second))})
	if len(got) != 0 {
		t.Fatalf("deadline+1s: expected no matches, got %v", got)
	}

	// equal instant in another zone still matches (Equal, not ==)
	inParis := deadline.In(time.FixedZone("CET", 3600))
	got = matchingIDs(tasks, TaskFilter{Deadline: tPtr(inParis)})
	if len(got) != 2 {
		t.Fatalf("deadline in other zone: expected 2 matches, got %v", got)
	}
}

func TestTaskFilter_IDCriteria(t *testing.T) {
	tasks := sampleTasks()

	got := matchingIDs(tasks, TaskFilter{CategoryID: idPtr(10)})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("categoryId=10: expected [1 2], got %v", got)
	}

	got = matchingIDs(tasks, TaskFilter{UserID: idPtr(100)})
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("userId=100: expected [1 3], got %v", got)
	}
}

func TestTaskFilter_ConjunctionOfAllCriteria(t *testing.T) {
	tasks := sampleTasks()
	deadline := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := TaskFilter{
		Name:        strPtr("write"),
		Description: strPtr("summary"),
		Deadline:    tPtr(deadline),
		CategoryID:  idPtr(10),
		UserID:      idPtr(100),
	}
	got := matchingIDs(tasks, f)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("full conjunction: expected [1], got %v", got)
	}

	// flipping any single criterion empties the result
	f.CategoryID = idPtr(11)
	if got := matchingIDs(tasks, f); len(got) != 0 {
		t.Fatalf("conjunction with wrong category: expected none, got %v", got)
	}
}
