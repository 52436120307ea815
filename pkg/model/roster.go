package model

import (
	"fmt"
	"strings"
)

// Roster is the caller-owned set of students, courses and classrooms for one
// session. Course codes and classroom IDs are looked up case-insensitively,
// student IDs exactly.
type Roster struct {
	students   []*Student
	courses    []*Course
	classrooms []*Classroom

	studentIdx   map[string]*Student
	courseIdx    map[string]*Course
	classroomIdx map[string]*Classroom
}

func NewRoster() *Roster {
	return &Roster{
		studentIdx:   make(map[string]*Student),
		courseIdx:    make(map[string]*Course),
		classroomIdx: make(map[string]*Classroom),
	}
}

func normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (r *Roster) AddStudent(s *Student) error {
	if _, ok := r.studentIdx[s.id]; ok {
		return fmt.Errorf("student %s: %w", s.id, ErrDuplicate)
	}
	r.studentIdx[s.id] = s
	r.students = append(r.students, s)
	return nil
}

func (r *Roster) AddCourse(c *Course) error {
	key := normalize(c.code)
	if _, ok := r.courseIdx[key]; ok {
		return fmt.Errorf("course %s: %w", c.code, ErrDuplicate)
	}
	r.courseIdx[key] = c
	r.courses = append(r.courses, c)
	return nil
}

func (r *Roster) AddClassroom(c *Classroom) error {
	key := normalize(c.id)
	if _, ok := r.classroomIdx[key]; ok {
		return fmt.Errorf("classroom %s: %w", c.id, ErrDuplicate)
	}
	r.classroomIdx[key] = c
	r.classrooms = append(r.classrooms, c)
	return nil
}

// RemoveCourse drops the course and detaches it from every enrolled student.
func (r *Roster) RemoveCourse(code string) bool {
	key := normalize(code)
	c, ok := r.courseIdx[key]
	if !ok {
		return false
	}
	for _, s := range c.Students() {
		c.RemoveStudent(s.id)
	}
	delete(r.courseIdx, key)
	for i, existing := range r.courses {
		if existing == c {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			break
		}
	}
	return true
}

func (r *Roster) Student(id string) (*Student, bool) {
	s, ok := r.studentIdx[strings.TrimSpace(id)]
	return s, ok
}

func (r *Roster) Course(code string) (*Course, bool) {
	c, ok := r.courseIdx[normalize(code)]
	return c, ok
}

func (r *Roster) Classroom(id string) (*Classroom, bool) {
	c, ok := r.classroomIdx[normalize(id)]
	return c, ok
}

// Students returns a copy of all students in insertion order.
func (r *Roster) Students() []*Student {
	return append([]*Student(nil), r.students...)
}

// Courses returns a copy of all courses in insertion order.
func (r *Roster) Courses() []*Course {
	return append([]*Course(nil), r.courses...)
}

// Classrooms returns a copy of all classrooms in insertion order.
func (r *Roster) Classrooms() []*Classroom {
	return append([]*Classroom(nil), r.classrooms...)
}

// Enroll adds the student to the course. The boolean is false if the student
// was already enrolled.
func (r *Roster) Enroll(studentID string, courseCode string) (bool, error) {
	s, c, err := r.pair(studentID, courseCode)
	if err != nil {
		return false, err
	}
	return c.AddStudent(s), nil
}

// Unenroll removes the student from the course. The boolean is false if the
// student was not enrolled.
func (r *Roster) Unenroll(studentID string, courseCode string) (bool, error) {
	s, c, err := r.pair(studentID, courseCode)
	if err != nil {
		return false, err
	}
	return c.RemoveStudent(s.id), nil
}

func (r *Roster) pair(studentID string, courseCode string) (*Student, *Course, error) {
	s, ok := r.Student(studentID)
	if !ok {
		return nil, nil, fmt.Errorf("student %s: %w", studentID, ErrUnknown)
	}
	c, ok := r.Course(courseCode)
	if !ok {
		return nil, nil, fmt.Errorf("course %s: %w", courseCode, ErrUnknown)
	}
	return s, c, nil
}
