package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	cause := errors.New("classrooms line 2: capacity")
	wrapped := fmt.Errorf("upload: %w", WithCause(ErrInvalidRoster, cause))

	got := FromError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, "INVALID_ROSTER", got.Code)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "could not read roster: classrooms line 2: capacity", got.Error())
	assert.ErrorIs(t, got, cause)
	assert.ErrorIs(t, wrapped, ErrInvalidRoster)
	assert.NotErrorIs(t, wrapped, ErrInvalidRequest)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	got := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Nil(t, ErrInternal.Err, "base error stays untouched")
	assert.Nil(t, FromError(nil))
}

func TestPreconditionsShareStatus(t *testing.T) {
	for _, e := range []*Error{ErrNoCourses, ErrNoClassrooms, ErrNoTimeSlots, ErrInvalidDays} {
		assert.Equal(t, http.StatusPreconditionFailed, e.Status, e.Code)
	}
	assert.NotEqual(t, ErrNoCourses.Code, ErrNoClassrooms.Code)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrScheduleNotFound, "run 42 not found")
	assert.Equal(t, "run 42 not found", clone.Message)
	assert.Equal(t, "schedule not found", ErrScheduleNotFound.Message)
	assert.Nil(t, Clone(nil, "x"))
	assert.Nil(t, WithCause(nil, errors.New("x")))
}
