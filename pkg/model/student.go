package model

import (
	"fmt"
	"strings"
)

type Student struct {
	id      string
	name    string
	courses []*Course
}

// NewStudent creates a student with the given ID. Blank IDs are rejected.
func NewStudent(id string, name string) (*Student, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("student: %w", ErrEmptyID)
	}
	return &Student{id: id, name: strings.TrimSpace(name)}, nil
}

func (s *Student) ID() string   { return s.id }
func (s *Student) Name() string { return s.name }

// Courses returns a copy of the courses the student is enrolled in.
func (s *Student) Courses() []*Course {
	out := make([]*Course, len(s.courses))
	copy(out, s.courses)
	return out
}

func (s *Student) String() string {
	if s.name == "" {
		return s.id
	}
	return s.id + " (" + s.name + ")"
}

func (s *Student) attach(c *Course) {
	for _, existing := range s.courses {
		if existing.code == c.code {
			return
		}
	}
	s.courses = append(s.courses, c)
}

func (s *Student) detach(c *Course) {
	for i, existing := range s.courses {
		if existing.code == c.code {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return
		}
	}
}
