package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/exam-scheduler/pkg/model"
)

// WriteSchedule writes the placed exams of schedule as CSV rows ordered by
// time slot, then classroom.
func WriteSchedule(out io.Writer, schedule *model.Schedule, delim rune) error {
	rows := ScheduleRows(schedule)
	writer := csv.NewWriter(out)
	writer.Comma = delim
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// ExportSchedule writes the schedule to the CSV file at path, replacing any
// existing file.
func ExportSchedule(schedule *model.Schedule, path string, delim rune) (string, error) {
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := WriteSchedule(out, schedule, delim); err != nil {
		return "", err
	}
	return path, nil
}

// ExportScheduleString renders the schedule as a CSV string.
func ExportScheduleString(schedule *model.Schedule, delim rune) (string, error) {
	buf := &bytes.Buffer{}
	if err := WriteSchedule(buf, schedule, delim); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintSchedule prints the exam period grouped by day.
func PrintSchedule(w io.Writer, schedule *model.Schedule) {
	rows := ScheduleRows(schedule)
	day := 0
	for _, r := range rows {
		if r.Day != day {
			day = r.Day
			label := schedule.DayLabel(day)
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(label))/2), label, strings.Repeat("-", int(0.5+(32-float32(len(label)))/2.0)))
		}
		fmt.Fprintf(w, "%-8s %-12s %-10s %4s  %s\n", r.SlotLabel, r.CourseCode, r.Classroom, r.Students, r.Instructor)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(rows))
}

// ScheduleRows flattens the placed exams into CSV rows.
func ScheduleRows(schedule *model.Schedule) []*model.ScheduleCSVRow {
	exams := schedule.Placed()
	slices.SortStableFunc(exams, func(a, b *model.Exam) int {
		if c := a.TimeSlot().Compare(b.TimeSlot()); c != 0 {
			return c
		}
		return strings.Compare(a.Classroom().ID(), b.Classroom().ID())
	})
	rows := make([]*model.ScheduleCSVRow, 0, len(exams))
	for _, e := range exams {
		t := e.TimeSlot()
		rows = append(rows, &model.ScheduleCSVRow{
			CourseCode: e.Course().Code(),
			CourseName: e.Course().Name(),
			Day:        t.Day,
			Slot:       t.Slot,
			SlotLabel:  schedule.SlotLabel(t.Slot),
			Classroom:  e.Classroom().ID(),
			Students:   strconv.Itoa(e.StudentCount()),
			Instructor: e.Course().Instructor(),
		})
	}
	return rows
}
