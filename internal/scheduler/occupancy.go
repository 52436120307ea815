package scheduler

import (
	"strings"

	"github.com/rhyrak/exam-scheduler/pkg/model"
)

// Occupancy records who or what is busy in which slot. Each entry remembers
// the course code that claimed it first. It is rebuilt for every generation
// or validation pass and only grows.
type Occupancy struct {
	students    map[string]map[model.TimeSlot]string
	rooms       map[model.TimeSlot]map[string]string
	instructors map[model.TimeSlot]map[string]string
}

func NewOccupancy() *Occupancy {
	return &Occupancy{
		students:    make(map[string]map[model.TimeSlot]string),
		rooms:       make(map[model.TimeSlot]map[string]string),
		instructors: make(map[model.TimeSlot]map[string]string),
	}
}

func roomKey(id string) string       { return strings.ToUpper(strings.TrimSpace(id)) }
func instructorKey(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// StudentAt returns the course occupying the student at t.
func (o *Occupancy) StudentAt(studentID string, t model.TimeSlot) (string, bool) {
	code, ok := o.students[studentID][t]
	return code, ok
}

func (o *Occupancy) StudentBusy(studentID string, t model.TimeSlot) bool {
	_, ok := o.StudentAt(studentID, t)
	return ok
}

// StudentExamsOnDay counts the slots the student occupies on day.
func (o *Occupancy) StudentExamsOnDay(studentID string, day int) int {
	n := 0
	for t := range o.students[studentID] {
		if t.Day == day {
			n++
		}
	}
	return n
}

// MarkStudent records the student as busy at t. An existing claim is kept.
func (o *Occupancy) MarkStudent(studentID string, t model.TimeSlot, courseCode string) {
	slots, ok := o.students[studentID]
	if !ok {
		slots = make(map[model.TimeSlot]string)
		o.students[studentID] = slots
	}
	if _, taken := slots[t]; !taken {
		slots[t] = courseCode
	}
}

// RoomAt returns the course occupying the room at t.
func (o *Occupancy) RoomAt(t model.TimeSlot, roomID string) (string, bool) {
	code, ok := o.rooms[t][roomKey(roomID)]
	return code, ok
}

func (o *Occupancy) RoomBusy(t model.TimeSlot, roomID string) bool {
	_, ok := o.RoomAt(t, roomID)
	return ok
}

func (o *Occupancy) MarkRoom(t model.TimeSlot, roomID string, courseCode string) {
	mark(o.rooms, t, roomKey(roomID), courseCode)
}

// InstructorAt returns the course occupying the instructor at t. Blank
// instructors are never busy.
func (o *Occupancy) InstructorAt(t model.TimeSlot, instructor string) (string, bool) {
	key := instructorKey(instructor)
	if key == "" {
		return "", false
	}
	code, ok := o.instructors[t][key]
	return code, ok
}

func (o *Occupancy) InstructorBusy(t model.TimeSlot, instructor string) bool {
	_, ok := o.InstructorAt(t, instructor)
	return ok
}

// MarkInstructor is a no-op for blank instructors.
func (o *Occupancy) MarkInstructor(t model.TimeSlot, instructor string, courseCode string) {
	key := instructorKey(instructor)
	if key == "" {
		return
	}
	mark(o.instructors, t, key, courseCode)
}

func mark(m map[model.TimeSlot]map[string]string, t model.TimeSlot, key string, courseCode string) {
	set, ok := m[t]
	if !ok {
		set = make(map[string]string)
		m[t] = set
	}
	if _, taken := set[key]; !taken {
		set[key] = courseCode
	}
}
