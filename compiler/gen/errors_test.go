package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", 0, "at least one worker is required")

		assert.Contains(t, err.Error(), "noodlegen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "value: 0")
		assert.Contains(t, err.Error(), "at least one worker is required")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Backend", nil, "backend cannot be nil")

		assert.Equal(t, `noodlegen: config error for "Backend": backend cannot be nil`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Header", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.False(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := fmt.Errorf("noodlegen: %w", NewConfigError("Header", nil, "missing"))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("Cookie", "cookie_noodle.go", "write failed", cause)
		err.Binding = "CookieCRUD"

		assert.Equal(t, "noodlegen: generation error for Cookie binding CookieCRUD (file: cookie_noodle.go): write failed: disk full", err.Error())
	})

	t.Run("Error message with entity only", func(t *testing.T) {
		err := &GenerationError{Entity: "Cookie"}
		assert.Equal(t, "noodlegen: generation error for Cookie", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("Cookie", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError("Cookie", "", "", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
