package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

type TaskHandler struct {
	service  services.TaskService
	notifier *services.TelegramNotifier
}

func NewTaskHandler(service services.TaskService, notifier *services.TelegramNotifier) *TaskHandler {
	return &TaskHandler{service: service, notifier: notifier}
}

// deadline inputs: full date-time (with or without zone) or a bare date,
// which normalizes to midnight UTC.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDeadline(s string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q, expected ISO-8601 date or date-time: %w", s, apperrors.ErrValidation)
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Deadline    string `json:"deadline" binding:"required"`
		CategoryID  int64  `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondError(c, err)
		return
	}

	task := &models.Task{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
		CategoryID:  req.CategoryID,
		// owner is forced to the principal inside the service
	}
	created, err := h.service.Create(c.Request.Context(), p, task)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%d owner=%d name=%q", created.ID, created.UserID, created.Name)
	c.JSON(http.StatusCreated, models.NewTaskView(created))

	h.notifier.NotifyTaskCreated(created)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTaskView(task))
}

// GET /tasks — plain listing; same path as a search with no criteria.
func (h *TaskHandler) List(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}
	tasks, err := h.service.Search(c.Request.Context(), p, models.TaskFilter{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks))
}

// @Summary      Search tasks
// @Description  Filters tasks by any subset of name, description, deadline, categoryId and userId. Non-admin callers only see their own tasks.
// @Tags         Tasks
// @Produce      json
// @Param        name         query  string  false  "case-insensitive substring"
// @Param        description  query  string  false  "case-insensitive substring"
// @Param        deadline     query  string  false  "ISO-8601 date or date-time, exact match"
// @Param        categoryId   query  int     false  "category id"
// @Param        userId       query  int     false  "owner id (admin only for foreign ids)"
// @Success      200  {array}   models.TaskView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /tasks/search [get]
func (h *TaskHandler) Search(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}

	var filter models.TaskFilter
	if v, ok := c.GetQuery("name"); ok && v != "" {
		filter.Name = &v
	}
	if v, ok := c.GetQuery("description"); ok && v != "" {
		filter.Description = &v
	}
	if v, ok := c.GetQuery("deadline"); ok && v != "" {
		t, err := parseDeadline(v)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Deadline = &t
	}
	if v, ok := c.GetQuery("categoryId"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		filter.CategoryID = &id
	}
	if v, ok := c.GetQuery("userId"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		filter.UserID = &id
	}

	tasks, err := h.service.Search(c.Request.Context(), p, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[task][search][ok] by=%d role=%s count=%d", p.ID, p.Role, len(tasks))
	c.JSON(http.StatusOK, models.NewTaskViews(tasks))
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Deadline    string `json:"deadline" binding:"required"`
		CategoryID  int64  `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), p, id, &models.Task{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%d by=%d", id, p.ID)
	c.JSON(http.StatusOK, models.NewTaskView(updated))
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%d by=%d", id, p.ID)
	c.Status(http.StatusNoContent)
}
