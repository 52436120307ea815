package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/exam-scheduler/pkg/model"
)

func handSchedule(t *testing.T, days int, slotCount int) *model.Schedule {
	t.Helper()
	s, err := model.NewSchedule(days, slots(slotCount))
	require.NoError(t, err)
	return s
}

func place(s *model.Schedule, c *model.Course, room *model.Classroom, day int, slot int) *model.Exam {
	e := model.NewExam(c)
	e.Assign(model.TimeSlot{Day: day, Slot: slot}, room)
	s.Add(e)
	return e
}

func TestValidateReportsRoomConflictOnce(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	phys := b.course("PHYS101", "", "s2")
	room := b.room("A101", 100)

	s := handSchedule(t, 1, 1)
	place(s, math, room, 1, 1)
	place(s, phys, room, 1, 1)

	report := Validate(s, nil)
	require.Len(t, report.Conflicts, 1)
	c := report.Conflicts[0]
	assert.Equal(t, KindRoom, c.Kind)
	assert.Equal(t, SeverityCritical, c.Severity)
	assert.Equal(t, "PHYS101", c.CourseCode)
	assert.Equal(t, "MATH101", c.OtherCourse)
	assert.Equal(t, StatusInvalid, report.Status)
	assert.False(t, report.Valid())
	assert.Equal(t, 1, report.Critical)
	assert.Equal(t, 2, report.Placed)
}

func TestValidateInstructorAndStudentConflicts(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "Ada", "s1", "s2")
	phys := b.course("PHYS101", "ada", "s1", "s2", "s3")
	r1 := b.room("A101", 10)
	r2 := b.room("A102", 10)

	s := handSchedule(t, 1, 1)
	place(s, math, r1, 1, 1)
	place(s, phys, r2, 1, 1)

	report := Validate(s, nil)
	assert.Len(t, report.Of(KindInstructor), 1)
	students := report.Of(KindStudent)
	require.Len(t, students, 2)
	assert.Equal(t, "s1", students[0].StudentID)
	assert.Equal(t, "s2", students[1].StudentID)
	assert.Equal(t, 3, report.Critical)
	assert.Empty(t, report.Of(KindRoom))
}

func TestValidateConsecutiveIsAdvisory(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	phys := b.course("PHYS101", "", "s1")
	room := b.room("A101", 10)

	s := handSchedule(t, 1, 2)
	place(s, math, room, 1, 1)
	place(s, phys, room, 1, 2)

	report := Validate(s, nil)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, KindConsecutive, report.Conflicts[0].Kind)
	assert.Equal(t, SeverityAdvisory, report.Conflicts[0].Severity)
	assert.Equal(t, StatusWarnings, report.Status)
	assert.True(t, report.Valid())
	assert.Equal(t, 1, report.Advisory)
	assert.Zero(t, report.Critical)
}

func TestValidateOnlyLooksBackwardsInWalkOrder(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	phys := b.course("PHYS101", "", "s1")
	room := b.room("A101", 10)

	s := handSchedule(t, 1, 2)
	place(s, phys, room, 1, 2)
	place(s, math, room, 1, 1)

	report := Validate(s, nil)
	assert.Equal(t, StatusClean, report.Status)
	assert.Empty(t, report.Conflicts)
}

func TestValidateUnplacedCoursesAreCritical(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	room := b.room("A101", 10)

	s := handSchedule(t, 1, 1)
	place(s, math, room, 1, 1)

	report := Validate(s, []string{"BIG101"})
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, KindUnplaced, report.Conflicts[0].Kind)
	assert.Equal(t, "BIG101", report.Conflicts[0].CourseCode)
	assert.Equal(t, 1, report.Unplaced)
	assert.Equal(t, StatusInvalid, report.Status)
}

func TestValidateNothingToValidate(t *testing.T) {
	report := Validate(nil, nil)
	assert.Equal(t, StatusNothingToValidate, report.Status)

	b := newRosterBuilder(t)
	s := handSchedule(t, 1, 1)
	s.Add(model.NewExam(b.course("MATH101", "", "s1")))

	report = Validate(s, []string{"MATH101"})
	assert.Equal(t, StatusNothingToValidate, report.Status)
	assert.False(t, report.Valid())
	assert.Empty(t, report.Conflicts)
	assert.Equal(t, []string{"Nothing to validate: no exams have been placed."}, report.Lines())
}

func TestValidateIsIdempotent(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "Ada", "s1")
	phys := b.course("PHYS101", "Ada", "s1")
	room := b.room("A101", 10)

	s := handSchedule(t, 1, 2)
	place(s, math, room, 1, 1)
	place(s, phys, room, 1, 1)

	first := Validate(s, []string{"X"})
	second := Validate(s, []string{"X"})
	assert.Equal(t, first, second)
}

func TestReportLines(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	phys := b.course("PHYS101", "", "s1")
	room := b.room("A101", 10)

	s := handSchedule(t, 1, 2)
	place(s, math, room, 1, 1)
	place(s, phys, room, 1, 2)

	lines := Validate(s, nil).Lines()
	assert.Equal(t, []string{
		"[  OK]: Course placement check.",
		"[  OK]: Classroom collision check.",
		"[  OK]: Instructor collision check.",
		"[  OK]: Student collision check.",
		"[WARN]: Consecutive exam check.",
		"- [ADVISORY] Student s1 has consecutive exams MATH101 and PHYS101 on Day 1",
	}, lines)
}

func TestSummarize(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	room := b.room("A101", 10)
	s := handSchedule(t, 1, 1)
	place(s, math, room, 1, 1)

	res := &Result{Schedule: s, Unplaced: []string{"BIG101"}}
	sum := Summarize(res, Validate(s, res.Unplaced))
	assert.Equal(t, Summary{Placed: 1, Unplaced: 1, Critical: 1}, sum)

	sum = Summarize(nil, Validate(s, nil))
	assert.Equal(t, Summary{Placed: 1}, sum)
}

func TestMissingCourses(t *testing.T) {
	b := newRosterBuilder(t)
	math := b.course("MATH101", "", "s1")
	b.course("PHYS101", "", "s1")
	b.course("EMPTY1", "")
	b.course("CHEM200", "", "s2")
	room := b.room("A101", 10)

	s := handSchedule(t, 1, 2)
	place(s, math, room, 1, 1)

	courses := append(b.roster.Courses(), b.roster.Courses()...)
	missing := MissingCourses(courses, s)
	assert.Equal(t, []string{"PHYS101", "CHEM200"}, missing)

	report := Validate(s, missing)
	assert.Equal(t, StatusInvalid, report.Status)
	assert.Len(t, report.Of(KindUnplaced), 2)

	assert.Equal(t, []string{"MATH101", "PHYS101", "CHEM200"}, MissingCourses(b.roster.Courses(), nil))
}
