package export

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rhyrak/exam-scheduler/internal/csvio"
	"github.com/rhyrak/exam-scheduler/internal/scheduler"
	"github.com/rhyrak/exam-scheduler/pkg/model"
)

// Dataset is a table with named columns.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

var (
	timetableHeaders = []string{"Slot", "Course", "Name", "Classroom", "Students", "Instructor"}
	reportHeaders    = []string{"Severity", "Kind", "Course", "Message"}
)

// PDFExporter renders exam timetables and validation reports.
type PDFExporter struct {
	orientation string
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{orientation: "L"}
}

// Render creates a single-table PDF document with an optional title.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := e.newDocument()
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	e.title(pdf, tr, title)
	e.table(pdf, tr, data)
	return output(pdf)
}

// RenderSchedule creates one timetable page per exam day followed by the
// validation report when one is given.
func (e *PDFExporter) RenderSchedule(schedule *model.Schedule, report *scheduler.Report) ([]byte, error) {
	if schedule == nil {
		return nil, fmt.Errorf("pdf requires a schedule")
	}
	pdf := e.newDocument()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	days := DayDatasets(schedule)
	for d := 1; d <= schedule.Days(); d++ {
		data := days[d]
		if len(data.Rows) == 0 {
			continue
		}
		pdf.AddPage()
		e.title(pdf, tr, "Exam Schedule - "+schedule.DayLabel(d))
		e.table(pdf, tr, data)
	}
	if report != nil {
		pdf.AddPage()
		e.title(pdf, tr, "Validation Report")
		pdf.SetFont("Arial", "", 10)
		summary := fmt.Sprintf("Status: %s   Placed: %d   Unplaced: %d   Critical: %d   Advisory: %d",
			report.Status, report.Placed, report.Unplaced, report.Critical, report.Advisory)
		pdf.CellFormat(0, 8, tr(summary), "", 1, "L", false, 0, "")
		pdf.Ln(3)
		if len(report.Conflicts) > 0 {
			e.table(pdf, tr, ReportDataset(report))
		}
	}
	if pdf.PageCount() == 0 {
		pdf.AddPage()
		e.title(pdf, tr, "Exam Schedule")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, "No exams placed.", "", 1, "L", false, 0, "")
	}
	return output(pdf)
}

// WriteSchedulePDF renders the schedule and writes it to path.
func (e *PDFExporter) WriteSchedulePDF(path string, schedule *model.Schedule, report *scheduler.Report) (string, error) {
	content, err := e.RenderSchedule(schedule, report)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// DayDatasets groups the placed exams into one timetable per day, keyed by
// day number.
func DayDatasets(schedule *model.Schedule) map[int]Dataset {
	out := make(map[int]Dataset, schedule.Days())
	for _, row := range csvio.ScheduleRows(schedule) {
		data, ok := out[row.Day]
		if !ok {
			data = Dataset{Headers: timetableHeaders}
		}
		label := row.SlotLabel
		if label == "" {
			label = strconv.Itoa(row.Slot)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Slot":       label,
			"Course":     row.CourseCode,
			"Name":       row.CourseName,
			"Classroom":  row.Classroom,
			"Students":   row.Students,
			"Instructor": row.Instructor,
		})
		out[row.Day] = data
	}
	return out
}

func ReportDataset(report *scheduler.Report) Dataset {
	data := Dataset{Headers: reportHeaders}
	for _, c := range report.Conflicts {
		data.Rows = append(data.Rows, map[string]string{
			"Severity": c.Severity.String(),
			"Kind":     string(c.Kind),
			"Course":   c.CourseCode,
			"Message":  c.Message,
		})
	}
	return data
}

func (e *PDFExporter) newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New(e.orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	return pdf
}

func (e *PDFExporter) title(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	if title == "" {
		return
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
	pdf.Ln(5)
}

func (e *PDFExporter) table(pdf *gofpdf.Fpdf, tr func(string) string, data Dataset) {
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (width - left - right) / float64(len(data.Headers))

	pdf.SetFont("Arial", "B", 10)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, tr(truncate(pdf, row[header], colWidth-2)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// truncate shortens s until it fits in width at the current font.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
