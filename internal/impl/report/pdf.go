package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/drujensen/todo/internal/domain/entities"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"
)

// BuildTasksReport renders all tasks into a single PDF, open tasks first.
func BuildTasksReport(tasks []*entities.Task, generatedAt time.Time) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetTitle("To-Do List", true)
	p.AddPage()

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	p.SetFont("Arial", "B", 16)
	p.Cell(40, 10, "To-Do List")
	p.Ln(10)
	p.SetFont("Arial", "", 10)
	p.Cell(40, 6, fmt.Sprintf("Generated %s - %s tasks, %s completed",
		generatedAt.Format(time.RFC1123), humanize.Comma(int64(len(tasks))), humanize.Comma(int64(completed))))
	p.Ln(10)

	writeSection(p, tr, "Open", tasks, false)
	writeSection(p, tr, "Completed", tasks, true)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(p *gofpdf.Fpdf, tr func(string) string, heading string, tasks []*entities.Task, completed bool) {
	p.SetFont("Arial", "B", 13)
	p.Cell(40, 8, heading)
	p.Ln(9)

	count := 0
	for _, t := range tasks {
		if t.Completed != completed {
			continue
		}
		count++

		p.SetFont("Arial", "B", 11)
		p.MultiCell(0, 6, tr(t.Title), "", "L", false)
		p.SetFont("Arial", "", 9)
		if t.Description != "" {
			p.MultiCell(0, 5, tr(t.Description), "", "L", false)
		}
		p.SetTextColor(128, 128, 128)
		p.Cell(40, 5, fmt.Sprintf("%s - created %s", t.ID.Hex(), t.ID.Timestamp().UTC().Format("2006-01-02 15:04")))
		p.SetTextColor(0, 0, 0)
		p.Ln(8)
	}

	if count == 0 {
		p.SetFont("Arial", "I", 10)
		p.Cell(40, 6, "None")
		p.Ln(8)
	}
	p.Ln(4)
}
