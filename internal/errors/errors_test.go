package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeuroError_Error(t *testing.T) {
	err := NewStorageError("STORAGE_WRITE", "failed to write regions", stderrors.New("disk full"))
	err.WithComponent("storage")

	msg := err.Error()
	assert.Contains(t, msg, "[STORAGE_WRITE]")
	assert.Contains(t, msg, "component:storage")
	assert.Contains(t, msg, "failed to write regions")
	assert.Contains(t, msg, "disk full")
}

func TestNeuroError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := NewGenerationError("GEN_REQUEST", "request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestNeuroError_Is(t *testing.T) {
	a := NewGenerationError("GEN_PARSE", "first", nil)
	b := NewGenerationError("GEN_PARSE", "second", nil)
	c := NewGenerationError("GEN_REQUEST", "other code", nil)

	assert.ErrorIs(t, a, b, "same type and code match")
	assert.NotErrorIs(t, a, c, "different codes do not match")
	assert.NotErrorIs(t, a, stderrors.New("GEN_PARSE"))
}

func TestNeuroError_Is_Wrapped(t *testing.T) {
	inner := NewStorageError("STORAGE_WRITE", "write failed", nil)
	wrapped := fmt.Errorf("during commit: %w", inner)

	assert.ErrorIs(t, wrapped, NewStorageError("STORAGE_WRITE", "", nil))
	assert.True(t, IsType(wrapped, ErrorTypeStorage))
	assert.True(t, IsRecoverable(wrapped))
}

func TestNeuroError_WithContext(t *testing.T) {
	err := NewValidationError("VAL_X", "bad value").
		WithContext("field", "language").
		WithContext("value", "fr")

	require.NotNil(t, err.Context)
	assert.Equal(t, "language", err.Context["field"])
	assert.Equal(t, "fr", err.Context["value"])
}

func TestRecoverability(t *testing.T) {
	assert.True(t, IsRecoverable(NewValidationError("V", "m")))
	assert.True(t, IsRecoverable(NewStorageError("S", "m", nil)))
	assert.True(t, IsRecoverable(NewGenerationError("G", "m", nil)))
	assert.False(t, IsRecoverable(NewInternalError("I", "m", nil)))
	assert.False(t, IsRecoverable(stderrors.New("plain")))
	assert.False(t, IsRecoverable(nil))
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(NewStorageError("S", "m", nil), ErrorTypeStorage))
	assert.False(t, IsType(NewStorageError("S", "m", nil), ErrorTypeGeneration))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeStorage))
}
