package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
	"github.com/gennovative/micro-fleet-common/pkg/logger"
	"github.com/gennovative/micro-fleet-common/pkg/validation"
)

type user struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Age     int    `json:"age"`
}

func newRegistry() *validation.Registry {
	return validation.NewRegistry(validation.WithLogger(logger.Discard()))
}

func defineUser(reg *validation.Registry) {
	validation.Define(reg, validation.ClassOf[user](),
		validation.Prop("id", validation.ID()),
		validation.Prop("name",
			validation.String(),
			validation.MinLength(3),
			validation.MaxLength(10),
			validation.Pattern(`^[\w -]+$`),
			validation.Required(),
		),
		validation.Prop("address", validation.String(validation.AllowEmpty(false)), validation.Required()),
		validation.Prop("age", validation.Number(), validation.Min(15), validation.Max(99)),
	)
}

func userValidator(t *testing.T, opts ...validation.ValidatorOption) *validation.Validator {
	t.Helper()
	reg := newRegistry()
	defineUser(reg)
	v, err := validation.For[user](reg, opts...)
	require.NoError(t, err)
	return v
}

func recovered(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(error)
		}
	}()
	fn()
	return nil
}

func validationError(t *testing.T, err error) *exceptions.ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := exceptions.AsValidationError(err)
	require.True(t, ok, "expected *exceptions.ValidationError, got %T", err)
	return ve
}
