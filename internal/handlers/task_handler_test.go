package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/authz"
	"tasktracker/internal/models"
)

func TestParseDeadline(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01T12:30:00+02:00", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := parseDeadline(tc.in)
		if err != nil {
			t.Fatalf("parseDeadline(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parseDeadline(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got.Location() != time.UTC {
			t.Fatalf("parseDeadline(%q) location = %v, want UTC", tc.in, got.Location())
		}
	}

	for _, bad := range []string{"", "tomorrow", "01/03/2024", "2024-13-40"} {
		if _, err := parseDeadline(bad); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("parseDeadline(%q): err = %v, want validation error", bad, err)
		}
	}
}

// stubTaskService records the filter Search receives.
type stubTaskService struct {
	gotFilter models.TaskFilter
	gotP      authz.Principal
	tasks     []models.Task
	err       error
}

func (s *stubTaskService) Create(_ context.Context, _ authz.Principal, _ *models.Task) (*models.Task, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTaskService) GetByID(_ context.Context, _ authz.Principal, _ int64) (*models.Task, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTaskService) Search(_ context.Context, p authz.Principal, f models.TaskFilter) ([]models.Task, error) {
	s.gotP = p
	s.gotFilter = f
	return s.tasks, s.err
}

func (s *stubTaskService) Update(_ context.Context, _ authz.Principal, _ int64, _ *models.Task) (*models.Task, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTaskService) Delete(_ context.Context, _ authz.Principal, _ int64) error {
	return errors.New("not implemented")
}

func searchRequest(t *testing.T, svc *stubTaskService, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set("user_id", int64(7))
	c.Set("role", authz.RoleUser)

	h.Search(c)
	return w
}

func TestSearch_ParsesQueryIntoFilter(t *testing.T) {
	svc := &stubTaskService{}
	w := searchRequest(t, svc, "/tasks/search?name=rep&deadline=2024-03-01&categoryId=3")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotP.ID != 7 || svc.gotP.Role != authz.RoleUser {
		t.Fatalf("principal = %+v", svc.gotP)
	}
	f := svc.gotFilter
	if f.Name == nil || *f.Name != "rep" {
		t.Fatalf("name criterion not forwarded: %+v", f)
	}
	if f.Description != nil || f.UserID != nil {
		t.Fatalf("absent params must stay nil: %+v", f)
	}
	if f.Deadline == nil || !f.Deadline.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("deadline criterion = %v", f.Deadline)
	}
	if f.CategoryID == nil || *f.CategoryID != 3 {
		t.Fatalf("categoryId criterion = %v", f.CategoryID)
	}
}

func TestSearch_NoResultsIsEmptyArray(t *testing.T) {
	svc := &stubTaskService{}
	w := searchRequest(t, svc, "/tasks/search?name=nothing")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Fatalf("body = %s, want []", body)
	}
}

func TestSearch_BadParamsRejected(t *testing.T) {
	for _, target := range []string{
		"/tasks/search?deadline=soon",
		"/tasks/search?categoryId=abc",
		"/tasks/search?userId=abc",
	} {
		svc := &stubTaskService{}
		w := searchRequest(t, svc, target)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestSearch_ServiceErrorsMapped(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrValidation, http.StatusBadRequest},
		{apperrors.ErrAccessDenied, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &stubTaskService{err: tc.err}
		w := searchRequest(t, svc, "/tasks/search")
		if w.Code != tc.want {
			t.Fatalf("err %v: status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}
