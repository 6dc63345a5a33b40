package validation

import (
	"encoding/json"
	"fmt"

	"github.com/gennovative/micro-fleet-common/pkg/guard"
)

// Model binds a validator to the Go type its cleaned values decode into.
type Model[T any] struct {
	v *Validator
}

// Bind wraps v so that validated values come back as T.
func Bind[T any](v *Validator) *Model[T] {
	guard.NotNull("validator", v)
	return &Model[T]{v: v}
}

// Validator returns the validator bound to the model.
func (m *Model[T]) Validator() *Validator {
	return m.v
}

// Whole validates input and decodes the cleaned value into a new T.
func (m *Model[T]) Whole(input any, opts ...Option) (T, error) {
	var out T
	clean, err := m.v.Whole(input, opts...)
	if err != nil {
		return out, err
	}
	if err := decodeInto(clean, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Patch validates input as a partial model and writes the properties it
// holds onto dst. Properties absent from input are left untouched.
func (m *Model[T]) Patch(dst *T, input any, opts ...Option) (map[string]any, error) {
	guard.NotNull("dst", dst)

	clean, err := m.v.Partial(input, opts...)
	if err != nil {
		return nil, err
	}
	if err := decodeInto(clean, dst); err != nil {
		return nil, err
	}
	return clean, nil
}

// ID validates a primary key value.
func (m *Model[T]) ID(input any) (any, error) {
	return m.v.ID(input)
}

func decodeInto(clean map[string]any, dst any) error {
	data, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConvertingInput, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrConvertingInput, err)
	}
	return nil
}
