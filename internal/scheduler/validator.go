package scheduler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/exam-scheduler/pkg/model"
)

type Severity int

const (
	SeverityCritical Severity = iota + 1
	SeverityAdvisory
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityAdvisory:
		return "ADVISORY"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ConflictKind string

const (
	KindRoom        ConflictKind = "ROOM_CONFLICT"
	KindInstructor  ConflictKind = "INSTRUCTOR_CONFLICT"
	KindStudent     ConflictKind = "STUDENT_CONFLICT"
	KindConsecutive ConflictKind = "CONSECUTIVE_EXAMS"
	KindUnplaced    ConflictKind = "UNPLACED_COURSE"
)

// Conflict is one finding of the validator.
type Conflict struct {
	Kind        ConflictKind   `json:"kind"`
	Severity    Severity       `json:"severity"`
	Message     string         `json:"message"`
	CourseCode  string         `json:"courseCode"`
	OtherCourse string         `json:"otherCourse,omitempty"`
	TimeSlot    model.TimeSlot `json:"timeSlot"`
	Classroom   string         `json:"classroom,omitempty"`
	Instructor  string         `json:"instructor,omitempty"`
	StudentID   string         `json:"studentId,omitempty"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("[%s] %s", c.Severity, c.Message)
}

type Status string

const (
	StatusNothingToValidate Status = "NOTHING_TO_VALIDATE"
	StatusClean             Status = "CLEAN"
	StatusWarnings          Status = "WARNINGS"
	StatusInvalid           Status = "INVALID"
)

// Report is the ordered list of findings plus summary counts.
type Report struct {
	Status    Status     `json:"status"`
	Conflicts []Conflict `json:"conflicts"`
	Placed    int        `json:"placed"`
	Unplaced  int        `json:"unplaced"`
	Critical  int        `json:"critical"`
	Advisory  int        `json:"advisory"`
}

// Valid reports whether the schedule was checked and has no critical issue.
func (r *Report) Valid() bool {
	return r.Status == StatusClean || r.Status == StatusWarnings
}

// Of returns the conflicts of the given kind.
func (r *Report) Of(kind ConflictKind) []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Lines renders one pass/fail line per check followed by every finding.
func (r *Report) Lines() []string {
	if r.Status == StatusNothingToValidate {
		return []string{"Nothing to validate: no exams have been placed."}
	}
	checks := []struct {
		name string
		kind ConflictKind
	}{
		{"Course placement check", KindUnplaced},
		{"Classroom collision check", KindRoom},
		{"Instructor collision check", KindInstructor},
		{"Student collision check", KindStudent},
		{"Consecutive exam check", KindConsecutive},
	}
	lines := make([]string, 0, len(checks)+len(r.Conflicts))
	for _, check := range checks {
		state := "  OK"
		if n := len(r.Of(check.kind)); n > 0 {
			state = "FAIL"
			if check.kind == KindConsecutive {
				state = "WARN"
			}
		}
		lines = append(lines, fmt.Sprintf("[%s]: %s.", state, check.name))
	}
	for _, c := range r.Conflicts {
		lines = append(lines, "- "+c.String())
	}
	return lines
}

func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Validator re-checks a schedule from scratch without trusting how it was
// built.
type Validator struct {
	logger *zap.Logger
}

func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate is a shorthand for NewValidator(nil).Validate.
func Validate(schedule *model.Schedule, unplaced []string) *Report {
	return NewValidator(nil).Validate(schedule, unplaced)
}

// Validate walks the placed exams in schedule order and reports room,
// instructor and student double-bookings as critical and students sitting the
// directly preceding slot as advisory. Courses listed in unplaced are
// reported as critical. A schedule without placed exams yields
// StatusNothingToValidate.
func (v *Validator) Validate(schedule *model.Schedule, unplaced []string) *Report {
	report := &Report{Unplaced: len(unplaced)}
	if schedule == nil {
		report.Status = StatusNothingToValidate
		return report
	}
	placed := schedule.Placed()
	report.Placed = len(placed)
	if len(placed) == 0 {
		report.Status = StatusNothingToValidate
		return report
	}

	occ := NewOccupancy()
	for _, exam := range placed {
		v.checkExam(report, exam, schedule, occ)
	}
	for _, code := range unplaced {
		report.add(Conflict{
			Kind:       KindUnplaced,
			Severity:   SeverityCritical,
			CourseCode: code,
			Message:    fmt.Sprintf("Course %s could not be placed", code),
		})
	}

	switch {
	case report.Critical > 0:
		report.Status = StatusInvalid
	case report.Advisory > 0:
		report.Status = StatusWarnings
	default:
		report.Status = StatusClean
	}
	v.logger.Info("schedule_validated",
		zap.String("status", string(report.Status)),
		zap.Int("placed", report.Placed),
		zap.Int("unplaced", report.Unplaced),
		zap.Int("critical", report.Critical),
		zap.Int("advisory", report.Advisory),
	)
	return report
}

func (v *Validator) checkExam(report *Report, exam *model.Exam, schedule *model.Schedule, occ *Occupancy) {
	t := exam.TimeSlot()
	course := exam.Course()
	code := course.Code()
	room := exam.Classroom().ID()
	when := describeSlot(schedule, t)

	if other, busy := occ.RoomAt(t, room); busy {
		report.add(Conflict{
			Kind: KindRoom, Severity: SeverityCritical,
			CourseCode: code, OtherCourse: other, TimeSlot: t, Classroom: room,
			Message: fmt.Sprintf("Classroom %s assigned to %s and %s at %s", room, other, code, when),
		})
	}
	if course.HasInstructor() {
		if other, busy := occ.InstructorAt(t, course.Instructor()); busy {
			report.add(Conflict{
				Kind: KindInstructor, Severity: SeverityCritical,
				CourseCode: code, OtherCourse: other, TimeSlot: t, Instructor: course.Instructor(),
				Message: fmt.Sprintf("Instructor %s supervises %s and %s at %s", course.Instructor(), other, code, when),
			})
		}
	}

	prev, hasPrev := t.Previous()
	students := course.Students()
	for _, s := range students {
		if other, busy := occ.StudentAt(s.ID(), t); busy {
			report.add(Conflict{
				Kind: KindStudent, Severity: SeverityCritical,
				CourseCode: code, OtherCourse: other, TimeSlot: t, StudentID: s.ID(),
				Message: fmt.Sprintf("Student %s sits %s and %s at %s", s.ID(), other, code, when),
			})
		}
		if !hasPrev {
			continue
		}
		if other, busy := occ.StudentAt(s.ID(), prev); busy {
			report.add(Conflict{
				Kind: KindConsecutive, Severity: SeverityAdvisory,
				CourseCode: code, OtherCourse: other, TimeSlot: t, StudentID: s.ID(),
				Message: fmt.Sprintf("Student %s has consecutive exams %s and %s on %s", s.ID(), other, code, schedule.DayLabel(t.Day)),
			})
		}
	}

	for _, s := range students {
		occ.MarkStudent(s.ID(), t, code)
	}
	occ.MarkRoom(t, room, code)
	occ.MarkInstructor(t, course.Instructor(), code)
}

func (r *Report) add(c Conflict) {
	r.Conflicts = append(r.Conflicts, c)
	switch c.Severity {
	case SeverityCritical:
		r.Critical++
	case SeverityAdvisory:
		r.Advisory++
	}
}

func describeSlot(schedule *model.Schedule, t model.TimeSlot) string {
	return schedule.DayLabel(t.Day) + " " + schedule.SlotLabel(t.Slot)
}

// MissingCourses lists, in input order and once per code, the courses with
// students that have no exam in schedule.
func MissingCourses(courses []*model.Course, schedule *model.Schedule) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, c := range courses {
		if c == nil || c.Enrollment() == 0 {
			continue
		}
		key := strings.ToUpper(c.Code())
		if seen[key] {
			continue
		}
		seen[key] = true
		if schedule != nil {
			if e, ok := schedule.ExamFor(c.Code()); ok && e.IsScheduled() {
				continue
			}
		}
		missing = append(missing, c.Code())
	}
	return missing
}

// Summary aggregates a generation result and its validation report.
type Summary struct {
	Placed   int `json:"placed"`
	Unplaced int `json:"unplaced"`
	Critical int `json:"critical"`
	Advisory int `json:"advisory"`
}

func Summarize(res *Result, report *Report) Summary {
	var s Summary
	if res != nil {
		s.Placed = len(res.Schedule.Placed())
		s.Unplaced = len(res.Unplaced)
	}
	if report != nil {
		if res == nil {
			s.Placed = report.Placed
			s.Unplaced = report.Unplaced
		}
		s.Critical = report.Critical
		s.Advisory = report.Advisory
	}
	return s
}
