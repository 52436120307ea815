package model

import "fmt"

// Exam is the sitting of exactly one course. It starts unplaced.
type Exam struct {
	course     *Course
	timeSlot   TimeSlot
	classroom  *Classroom
	override   int
	overridden bool
}

func NewExam(course *Course) *Exam {
	return &Exam{course: course}
}

func (e *Exam) Course() *Course { return e.course }

// TimeSlot returns the assigned slot, or the zero value if unplaced.
func (e *Exam) TimeSlot() TimeSlot { return e.timeSlot }

// Classroom returns the assigned room, or nil if unplaced.
func (e *Exam) Classroom() *Classroom { return e.classroom }

// StudentCount is the course enrollment unless an override has been set.
func (e *Exam) StudentCount() int {
	if e.overridden {
		return e.override
	}
	return e.course.Enrollment()
}

// SetStudentCount overrides the effective student count. Used for imported
// schedules that lack the full roster.
func (e *Exam) SetStudentCount(n int) error {
	if n < 0 {
		return fmt.Errorf("exam %s: %w", e.course.code, ErrInvalidOverride)
	}
	e.override = n
	e.overridden = true
	return nil
}

// HasStudentCountOverride reports whether SetStudentCount was called.
func (e *Exam) HasStudentCountOverride() bool { return e.overridden }

// Assign places the exam into slot and room.
func (e *Exam) Assign(slot TimeSlot, room *Classroom) {
	e.timeSlot = slot
	e.classroom = room
}

// Unassign returns the exam to the unplaced state.
func (e *Exam) Unassign() {
	e.timeSlot = TimeSlot{}
	e.classroom = nil
}

// IsScheduled reports whether both a time slot and a classroom are assigned.
func (e *Exam) IsScheduled() bool {
	return !e.timeSlot.IsZero() && e.classroom != nil
}

func (e *Exam) String() string {
	if !e.IsScheduled() {
		return e.course.code + " (unplaced)"
	}
	return fmt.Sprintf("%s @ %s in %s", e.course.code, e.timeSlot, e.classroom.id)
}
