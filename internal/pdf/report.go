package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tasktracker/internal/models"
)

// Generator is the report-rendering interface (easy to stub in tests).
type Generator interface {
	TaskReport(w io.Writer, tasks []models.TaskView) error
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// TaskReport renders the given tasks as a simple table and streams the PDF
// to w.
func (g *ReportGenerator) TaskReport(w io.Writer, tasks []models.TaskView) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Task report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s, %d tasks", time.Now().Format("2006-01-02 15:04"), len(tasks)))
	pdf.Ln(12)

	type col struct {
		title string
		width float64
	}
	cols := []col{
		{"ID", 15},
		{"Name", 70},
		{"Description", 90},
		{"Deadline", 35},
		{"Category", 35},
		{"Owner", 30},
	}

	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tasks {
		cells := []string{
			fmt.Sprintf("%d", t.ID),
			clip(t.Name, 45),
			clip(t.Description, 60),
			t.Deadline.Format("2006-01-02 15:04"),
			clip(t.CategoryName, 22),
			clip(t.OwnerName, 20),
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
