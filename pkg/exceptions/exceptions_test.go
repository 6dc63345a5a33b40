package exceptions_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
)

var errBoom = errors.New("boom")

func TestNewCritical(t *testing.T) {
	t.Run("wraps cause", func(t *testing.T) {
		err := exceptions.NewCritical(errBoom)
		assert.Equal(t, "boom", err.Error())
		assert.True(t, err.IsCritical())
		assert.ErrorIs(t, err, errBoom)
		assert.True(t, exceptions.IsCritical(err))
	})

	t.Run("nil cause falls back to unknown", func(t *testing.T) {
		err := exceptions.NewCritical(nil)
		assert.ErrorIs(t, err, exceptions.ErrUnknown)
	})

	t.Run("formatted message keeps wrapped error", func(t *testing.T) {
		err := exceptions.Criticalf("compile %s: %w", "User", errBoom)
		assert.Equal(t, "compile User: boom", err.Error())
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestNewMinor(t *testing.T) {
	err := exceptions.NewMinor("try again", map[string]int{"attempt": 2})
	assert.False(t, err.IsCritical())
	assert.False(t, exceptions.IsCritical(err))
	assert.Equal(t, "try again", err.Error())
	assert.Equal(t, map[string]int{"attempt": 2}, err.Details)
}

func TestNewInvalidArgument(t *testing.T) {
	err := exceptions.NewInvalidArgument("class", "must not be nil")
	assert.Equal(t, `argument "class" must not be nil`, err.Error())
	assert.Equal(t, "class", err.ArgName)
	assert.ErrorIs(t, err, exceptions.ErrInvalidArgument)
	assert.True(t, exceptions.IsCritical(err))
}

func TestValidationError(t *testing.T) {
	err := exceptions.NewValidationError(
		exceptions.ValidationErrorItem{Message: `"name" is required`, Path: []string{"name"}},
		exceptions.ValidationErrorItem{Message: `"age" must be a number`, Path: []string{"age"}, Value: "x"},
		exceptions.ValidationErrorItem{Message: `"name" must be a string`, Path: []string{"name"}, Value: 1},
		exceptions.ValidationErrorItem{Message: `"value" must be of type object`},
	)

	t.Run("summarises items", func(t *testing.T) {
		assert.Contains(t, err.Error(), "validation failed: ")
		assert.Contains(t, err.Error(), `name: "name" is required`)
		assert.Contains(t, err.Error(), `"value" must be of type object`)
	})

	t.Run("queries by field", func(t *testing.T) {
		assert.Equal(t, 4, err.Len())
		assert.True(t, err.Has("name"))
		assert.False(t, err.Has("address"))
		assert.Equal(t, []string{`"name" is required`, `"name" must be a string`}, err.Get("name"))
		assert.Equal(t, []string{"name", "age", ""}, err.Fields())
	})

	t.Run("is a minor exception", func(t *testing.T) {
		assert.False(t, exceptions.IsCritical(err))
		assert.ErrorIs(t, err, exceptions.ErrValidation)
	})

	t.Run("extracted from wrapped error", func(t *testing.T) {
		wrapped := errors.Join(errBoom, err)
		ve, ok := exceptions.AsValidationError(wrapped)
		require.True(t, ok)
		assert.Same(t, err, ve)

		_, ok = exceptions.AsValidationError(errBoom)
		assert.False(t, ok)
		_, ok = exceptions.AsValidationError(nil)
		assert.False(t, ok)
	})

	t.Run("empty error message", func(t *testing.T) {
		assert.Equal(t, "validation failed", exceptions.NewValidationError().Error())
	})
}
