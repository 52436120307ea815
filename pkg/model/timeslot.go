package model

import "fmt"

// TimeSlot is a (day, slot) coordinate in the exam period. Both fields are
// 1-based. TimeSlot is a comparable value and can be used as a map key.
type TimeSlot struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// NewTimeSlot validates and creates a time slot.
func NewTimeSlot(day int, slot int) (TimeSlot, error) {
	if day < 1 || slot < 1 {
		return TimeSlot{}, fmt.Errorf("time slot %d/%d: %w", day, slot, ErrInvalidTimeSlot)
	}
	return TimeSlot{Day: day, Slot: slot}, nil
}

// IsZero reports whether t is the unassigned zero value.
func (t TimeSlot) IsZero() bool {
	return t.Day == 0 && t.Slot == 0
}

// Compare orders by day, then slot.
func (t TimeSlot) Compare(o TimeSlot) int {
	if d := t.Day - o.Day; d != 0 {
		return d
	}
	return t.Slot - o.Slot
}

func (t TimeSlot) Before(o TimeSlot) bool {
	return t.Compare(o) < 0
}

// IsConsecutive reports whether both slots are on the same day and one
// directly follows the other.
func (t TimeSlot) IsConsecutive(o TimeSlot) bool {
	if t.Day != o.Day {
		return false
	}
	d := t.Slot - o.Slot
	return d == 1 || d == -1
}

// Previous returns the slot immediately before t on the same day.
// The second result is false for the first slot of a day.
func (t TimeSlot) Previous() (TimeSlot, bool) {
	if t.Slot <= 1 {
		return TimeSlot{}, false
	}
	return TimeSlot{Day: t.Day, Slot: t.Slot - 1}, true
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("D%d/S%d", t.Day, t.Slot)
}
