package model

import "errors"

var (
	ErrEmptyID          = errors.New("identity must not be empty")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrInvalidTimeSlot  = errors.New("day and slot must be positive")
	ErrInvalidGrid      = errors.New("days and slots per day must be positive")
	ErrInvalidOverride  = errors.New("student count override must not be negative")
	ErrDuplicate        = errors.New("identity already exists")
	ErrUnknown          = errors.New("identity not found")
	ErrNotInScheduleDay = errors.New("time slot outside of the exam period")
)
