package model

import (
	"fmt"
	"strings"
)

// Course is identified by its code. It exclusively owns its enrollment set;
// callers only receive copies.
type Course struct {
	code       string
	name       string
	instructor string
	duration   int
	students   []*Student
	index      map[string]int
}

// NewCourse creates a course. Duration is measured in slot units and is
// floored to 1.
func NewCourse(code string, name string, instructor string, duration int) (*Course, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("course: %w", ErrEmptyID)
	}
	if duration < 1 {
		duration = 1
	}
	return &Course{
		code:       code,
		name:       strings.TrimSpace(name),
		instructor: strings.TrimSpace(instructor),
		duration:   duration,
		index:      make(map[string]int),
	}, nil
}

func (c *Course) Code() string       { return c.code }
func (c *Course) Name() string       { return c.name }
func (c *Course) Instructor() string { return c.instructor }
func (c *Course) Duration() int      { return c.duration }

// HasInstructor reports whether a named instructor is set.
func (c *Course) HasInstructor() bool { return c.instructor != "" }

// Enrollment returns the number of enrolled students.
func (c *Course) Enrollment() int { return len(c.students) }

// Students returns a copy of the enrolled students in enrollment order.
func (c *Course) Students() []*Student {
	out := make([]*Student, len(c.students))
	copy(out, c.students)
	return out
}

// IsEnrolled checks membership by student identity.
func (c *Course) IsEnrolled(studentID string) bool {
	_, ok := c.index[studentID]
	return ok
}

// AddStudent enrolls s. Returns false if s was already enrolled.
func (c *Course) AddStudent(s *Student) bool {
	if s == nil || c.IsEnrolled(s.id) {
		return false
	}
	c.index[s.id] = len(c.students)
	c.students = append(c.students, s)
	s.attach(c)
	return true
}

// RemoveStudent unenrolls the student with the given ID. Returns false if no
// such student was enrolled.
func (c *Course) RemoveStudent(studentID string) bool {
	i, ok := c.index[studentID]
	if !ok {
		return false
	}
	s := c.students[i]
	c.students = append(c.students[:i], c.students[i+1:]...)
	delete(c.index, studentID)
	for j := i; j < len(c.students); j++ {
		c.index[c.students[j].id] = j
	}
	s.detach(c)
	return true
}

func (c *Course) String() string {
	return c.code
}
