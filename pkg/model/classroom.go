package model

import (
	"fmt"
	"strings"
)

type Classroom struct {
	id       string
	capacity int
}

// NewClassroom creates a classroom. Capacity must be positive.
func NewClassroom(id string, capacity int) (*Classroom, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("classroom: %w", ErrEmptyID)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("classroom %s: %w", id, ErrInvalidCapacity)
	}
	return &Classroom{id: id, capacity: capacity}, nil
}

func (c *Classroom) ID() string    { return c.id }
func (c *Classroom) Capacity() int { return c.capacity }

// CanAccommodate checks if n students fit into the classroom.
func (c *Classroom) CanAccommodate(n int) bool {
	return c.capacity >= n
}

func (c *Classroom) String() string {
	return fmt.Sprintf("%s (%d)", c.id, c.capacity)
}
