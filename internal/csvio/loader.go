package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"

	"github.com/rhyrak/exam-scheduler/pkg/model"
)

var validate = validator.New()

func newReader(in io.Reader, delim rune) *csv.Reader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

// readRows unmarshals and validates every row of in. Line numbers in errors
// count the header as line 1.
func readRows[T any](in io.Reader, delim rune, what string) ([]*T, error) {
	rows := []*T{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", what, err)
	}
	for i, row := range rows {
		if err := validate.Struct(row); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", what, i+2, err)
		}
	}
	return rows, nil
}

func ReadCourses(in io.Reader, delim rune) ([]*model.CourseCSVRow, error) {
	return readRows[model.CourseCSVRow](in, delim, "courses")
}

func ReadClassrooms(in io.Reader, delim rune) ([]*model.ClassroomCSVRow, error) {
	return readRows[model.ClassroomCSVRow](in, delim, "classrooms")
}

func ReadEnrollments(in io.Reader, delim rune) ([]*model.EnrollmentCSVRow, error) {
	return readRows[model.EnrollmentCSVRow](in, delim, "students")
}

// BuildRoster turns parsed rows into a roster. Enrollments must reference
// known courses; repeated enrollments are ignored.
func BuildRoster(courses []*model.CourseCSVRow, classrooms []*model.ClassroomCSVRow, enrollments []*model.EnrollmentCSVRow) (*model.Roster, error) {
	roster := model.NewRoster()
	for _, row := range courses {
		c, err := model.NewCourse(row.CourseCode, row.CourseName, row.Instructor, row.Duration)
		if err != nil {
			return nil, err
		}
		if err := roster.AddCourse(c); err != nil {
			return nil, err
		}
	}
	for _, row := range classrooms {
		c, err := model.NewClassroom(row.ID, row.Capacity)
		if err != nil {
			return nil, err
		}
		if err := roster.AddClassroom(c); err != nil {
			return nil, err
		}
	}
	for _, row := range enrollments {
		if _, ok := roster.Student(row.StudentID); !ok {
			s, err := model.NewStudent(row.StudentID, row.StudentName)
			if err != nil {
				return nil, err
			}
			if err := roster.AddStudent(s); err != nil {
				return nil, err
			}
		}
		if _, err := roster.Enroll(row.StudentID, row.CourseCode); err != nil {
			return nil, err
		}
	}
	return roster, nil
}

// LoadRosterFrom reads the three roster files from already opened readers.
func LoadRosterFrom(courses io.Reader, students io.Reader, classrooms io.Reader, delim rune) (*model.Roster, error) {
	courseRows, err := ReadCourses(courses, delim)
	if err != nil {
		return nil, err
	}
	roomRows, err := ReadClassrooms(classrooms, delim)
	if err != nil {
		return nil, err
	}
	enrollRows, err := ReadEnrollments(students, delim)
	if err != nil {
		return nil, err
	}
	return BuildRoster(courseRows, roomRows, enrollRows)
}

// LoadRoster reads and parses the given csv files for roster data.
func LoadRoster(coursesFile string, studentsFile string, classroomsFile string, delim rune) (*model.Roster, error) {
	files := make([]*os.File, 0, 3)
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, path := range []string{coursesFile, studentsFile, classroomsFile} {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s, please make sure the file exists: %w", path, err)
		}
		files = append(files, f)
	}
	return LoadRosterFrom(files[0], files[1], files[2], delim)
}

// ReadSchedule builds a schedule from exported or externally authored rows.
// Courses and classrooms unknown to the roster are synthesized without
// touching the roster; a non-empty students column overrides the effective
// student count.
func ReadSchedule(in io.Reader, delim rune, roster *model.Roster, days int, slotLabels []string) (*model.Schedule, error) {
	rows, err := readRows[model.ScheduleCSVRow](in, delim, "schedule")
	if err != nil {
		return nil, err
	}
	schedule, err := model.NewSchedule(days, slotLabels)
	if err != nil {
		return nil, err
	}
	if roster == nil {
		roster = model.NewRoster()
	}
	synthesized := model.NewRoster()

	for i, row := range rows {
		line := i + 2
		label := strings.TrimSpace(row.SlotLabel)
		if label == "" {
			label = strconv.Itoa(row.Slot)
		}
		t, err := schedule.TimeSlotFor(row.Day, label)
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: %w", line, err)
		}

		count := -1
		if raw := strings.TrimSpace(row.Students); raw != "" {
			count, err = strconv.Atoi(raw)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("schedule line %d: invalid students %q", line, raw)
			}
		}

		course, ok := roster.Course(row.CourseCode)
		if !ok {
			course, ok = synthesized.Course(row.CourseCode)
		}
		if !ok {
			course, err = model.NewCourse(row.CourseCode, row.CourseName, row.Instructor, 1)
			if err != nil {
				return nil, fmt.Errorf("schedule line %d: %w", line, err)
			}
			if err := synthesized.AddCourse(course); err != nil {
				return nil, fmt.Errorf("schedule line %d: %w", line, err)
			}
		}
		room, ok := roster.Classroom(row.Classroom)
		if !ok {
			room, ok = synthesized.Classroom(row.Classroom)
		}
		if !ok {
			room, err = model.NewClassroom(row.Classroom, max(count, 1))
			if err != nil {
				return nil, fmt.Errorf("schedule line %d: %w", line, err)
			}
			if err := synthesized.AddClassroom(room); err != nil {
				return nil, fmt.Errorf("schedule line %d: %w", line, err)
			}
		}

		exam := model.NewExam(course)
		if count >= 0 {
			if err := exam.SetStudentCount(count); err != nil {
				return nil, fmt.Errorf("schedule line %d: %w", line, err)
			}
		}
		exam.Assign(t, room)
		schedule.Add(exam)
	}
	return schedule, nil
}

// LoadSchedule opens path and calls ReadSchedule.
func LoadSchedule(path string, delim rune, roster *model.Roster, days int, slotLabels []string) (*model.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, please make sure the file exists: %w", path, err)
	}
	defer f.Close()
	return ReadSchedule(f, delim, roster, days, slotLabels)
}
