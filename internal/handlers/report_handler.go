package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/models"
	"tasktracker/internal/pdf"
	"tasktracker/internal/services"
)

type ReportHandler struct {
	tasks services.TaskService
	gen   pdf.Generator
}

func NewReportHandler(tasks services.TaskService, gen pdf.Generator) *ReportHandler {
	return &ReportHandler{tasks: tasks, gen: gen}
}

// GET /reports/tasks.pdf — admin-only route.
func (h *ReportHandler) TasksPDF(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no principal in context"})
		return
	}

	tasks, err := h.tasks.Search(c.Request.Context(), p, models.TaskFilter{})
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.gen.TaskReport(&buf, models.NewTaskViews(tasks)); err != nil {
		log.Printf("[report][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="tasks.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
