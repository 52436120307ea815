package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCourse(t *testing.T, code string) *Course {
	t.Helper()
	c, err := NewCourse(code, code+" name", "", 0)
	require.NoError(t, err)
	return c
}

func mustStudent(t *testing.T, id string) *Student {
	t.Helper()
	s, err := NewStudent(id, "")
	require.NoError(t, err)
	return s
}

func TestConstructorsRejectBlankIdentity(t *testing.T) {
	_, err := NewStudent("  ", "Ada")
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewCourse("", "Maths", "", 1)
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewClassroom("\t", 30)
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewClassroom("A101", 0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = NewTimeSlot(0, 1)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestCourseDurationFloorsToOne(t *testing.T) {
	c, err := NewCourse("CENG101", "Intro", "Dr. Smith", -3)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Duration())
	assert.True(t, c.HasInstructor())
}

func TestCourseEnrollmentIsIdempotent(t *testing.T) {
	c := mustCourse(t, "CENG101")
	s := mustStudent(t, "s1")

	assert.True(t, c.AddStudent(s))
	assert.False(t, c.AddStudent(s))
	assert.Equal(t, 1, c.Enrollment())
	assert.Equal(t, []*Course{c}, s.Courses())

	assert.True(t, c.RemoveStudent("s1"))
	assert.False(t, c.RemoveStudent("s1"))
	assert.Equal(t, 0, c.Enrollment())
	assert.Empty(t, s.Courses())
}

func TestCourseRemoveKeepsIndexConsistent(t *testing.T) {
	c := mustCourse(t, "CENG101")
	for _, id := range []string{"s1", "s2", "s3"} {
		c.AddStudent(mustStudent(t, id))
	}
	require.True(t, c.RemoveStudent("s1"))
	assert.True(t, c.IsEnrolled("s3"))
	require.True(t, c.RemoveStudent("s3"))
	ids := []string{}
	for _, s := range c.Students() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []string{"s2"}, ids)
}

func TestStudentsReturnsCopy(t *testing.T) {
	c := mustCourse(t, "CENG101")
	c.AddStudent(mustStudent(t, "s1"))
	view := c.Students()
	view[0] = nil
	assert.NotNil(t, c.Students()[0])
}

func TestTimeSlotOrdering(t *testing.T) {
	a := TimeSlot{Day: 1, Slot: 3}
	b := TimeSlot{Day: 2, Slot: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Zero(t, a.Compare(TimeSlot{Day: 1, Slot: 3}))

	assert.True(t, a.IsConsecutive(TimeSlot{Day: 1, Slot: 2}))
	assert.True(t, a.IsConsecutive(TimeSlot{Day: 1, Slot: 4}))
	assert.False(t, a.IsConsecutive(TimeSlot{Day: 2, Slot: 2}))
	assert.False(t, a.IsConsecutive(a))

	prev, ok := a.Previous()
	assert.True(t, ok)
	assert.Equal(t, TimeSlot{Day: 1, Slot: 2}, prev)
	_, ok = b.Previous()
	assert.False(t, ok)

	seen := map[TimeSlot]bool{{Day: 1, Slot: 3}: true}
	assert.True(t, seen[a])
}

func TestExamStudentCountOverride(t *testing.T) {
	c := mustCourse(t, "CENG101")
	c.AddStudent(mustStudent(t, "s1"))
	e := NewExam(c)
	assert.Equal(t, 1, e.StudentCount())
	assert.False(t, e.IsScheduled())

	require.NoError(t, e.SetStudentCount(40))
	assert.Equal(t, 40, e.StudentCount())
	assert.ErrorIs(t, e.SetStudentCount(-1), ErrInvalidOverride)

	room, err := NewClassroom("A101", 50)
	require.NoError(t, err)
	e.Assign(TimeSlot{Day: 1, Slot: 1}, room)
	assert.True(t, e.IsScheduled())
	e.Unassign()
	assert.False(t, e.IsScheduled())
	assert.Nil(t, e.Classroom())
}

func TestClassroomCanAccommodate(t *testing.T) {
	room, err := NewClassroom("A101", 50)
	require.NoError(t, err)
	assert.True(t, room.CanAccommodate(50))
	assert.False(t, room.CanAccommodate(51))
}
