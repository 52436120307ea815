package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Schedule holds the exams of one exam period in append order.
type Schedule struct {
	days       int
	slotLabels []string
	dayLabels  []string
	exams      []*Exam
}

// NewSchedule creates an empty schedule for the given number of days. The
// slot count per day is the number of slot labels.
func NewSchedule(days int, slotLabels []string) (*Schedule, error) {
	if days < 1 || len(slotLabels) < 1 {
		return nil, fmt.Errorf("schedule %d days x %d slots: %w", days, len(slotLabels), ErrInvalidGrid)
	}
	labels := make([]string, len(slotLabels))
	for i, l := range slotLabels {
		l = strings.TrimSpace(l)
		if l == "" {
			l = strconv.Itoa(i + 1)
		}
		labels[i] = l
	}
	return &Schedule{days: days, slotLabels: labels}, nil
}

// WithDayLabels sets display names for days. Missing labels fall back to
// "Day N".
func (s *Schedule) WithDayLabels(labels []string) *Schedule {
	s.dayLabels = append([]string(nil), labels...)
	return s
}

func (s *Schedule) Days() int        { return s.days }
func (s *Schedule) SlotsPerDay() int { return len(s.slotLabels) }

// SlotLabels returns a copy of the slot labels.
func (s *Schedule) SlotLabels() []string {
	return append([]string(nil), s.slotLabels...)
}

// SlotLabel returns the label of the 1-based slot number.
func (s *Schedule) SlotLabel(slot int) string {
	if slot < 1 || slot > len(s.slotLabels) {
		return strconv.Itoa(slot)
	}
	return s.slotLabels[slot-1]
}

// DayLabel returns the label of the 1-based day.
func (s *Schedule) DayLabel(day int) string {
	if day >= 1 && day <= len(s.dayLabels) && strings.TrimSpace(s.dayLabels[day-1]) != "" {
		return s.dayLabels[day-1]
	}
	return "Day " + strconv.Itoa(day)
}

// Contains checks if t lies inside the exam period grid.
func (s *Schedule) Contains(t TimeSlot) bool {
	return t.Day >= 1 && t.Day <= s.days && t.Slot >= 1 && t.Slot <= len(s.slotLabels)
}

// TimeSlots lists every slot of the period ordered by day, then slot.
func (s *Schedule) TimeSlots() []TimeSlot {
	out := make([]TimeSlot, 0, s.days*len(s.slotLabels))
	for d := 1; d <= s.days; d++ {
		for n := 1; n <= len(s.slotLabels); n++ {
			out = append(out, TimeSlot{Day: d, Slot: n})
		}
	}
	return out
}

// TimeSlotFor resolves a slot label (or a plain slot number) on the given day.
func (s *Schedule) TimeSlotFor(day int, label string) (TimeSlot, error) {
	label = strings.TrimSpace(label)
	slot := 0
	for i, l := range s.slotLabels {
		if strings.EqualFold(l, label) {
			slot = i + 1
			break
		}
	}
	if slot == 0 {
		if n, err := strconv.Atoi(label); err == nil {
			slot = n
		}
	}
	t := TimeSlot{Day: day, Slot: slot}
	if !s.Contains(t) {
		return TimeSlot{}, fmt.Errorf("day %d slot %q: %w", day, label, ErrNotInScheduleDay)
	}
	return t, nil
}

// Add appends an exam.
func (s *Schedule) Add(e *Exam) {
	if e == nil {
		return
	}
	s.exams = append(s.exams, e)
}

// Len returns the number of exams held.
func (s *Schedule) Len() int { return len(s.exams) }

// Exams returns a copy of all exams in append order.
func (s *Schedule) Exams() []*Exam {
	out := make([]*Exam, len(s.exams))
	copy(out, s.exams)
	return out
}

// Placed returns the exams that have both a slot and a room, in append order.
func (s *Schedule) Placed() []*Exam {
	return s.filter(func(e *Exam) bool { return e.IsScheduled() })
}

// ExamFor returns the exam of the course with the given code. Codes are
// compared case-insensitively.
func (s *Schedule) ExamFor(courseCode string) (*Exam, bool) {
	courseCode = strings.TrimSpace(courseCode)
	for _, e := range s.exams {
		if strings.EqualFold(e.course.code, courseCode) {
			return e, true
		}
	}
	return nil, false
}

func (s *Schedule) ExamsOnDay(day int) []*Exam {
	return s.filter(func(e *Exam) bool { return e.IsScheduled() && e.timeSlot.Day == day })
}

func (s *Schedule) ExamsAt(t TimeSlot) []*Exam {
	return s.filter(func(e *Exam) bool { return e.IsScheduled() && e.timeSlot == t })
}

func (s *Schedule) ExamsIn(classroomID string) []*Exam {
	classroomID = strings.TrimSpace(classroomID)
	return s.filter(func(e *Exam) bool {
		return e.classroom != nil && strings.EqualFold(e.classroom.id, classroomID)
	})
}

func (s *Schedule) filter(keep func(*Exam) bool) []*Exam {
	var out []*Exam
	for _, e := range s.exams {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
