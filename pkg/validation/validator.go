package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
	"github.com/gennovative/micro-fleet-common/pkg/guard"
	"github.com/gennovative/micro-fleet-common/pkg/schema"
)

// Validator validates input against the compiled schemas of one class.
// It must be compiled once before use; afterwards it is safe for concurrent
// use.
type Validator struct {
	registry *Registry
	class    Class
	cfg      validatorConfig

	once    sync.Once
	err     error
	fault   any
	schemas atomic.Pointer[Schemas]
}

// NewValidator creates an uncompiled validator for class. A nil reg means
// DefaultRegistry.
func NewValidator(reg *Registry, class Class, opts ...ValidatorOption) *Validator {
	guard.NotNull("class", class)

	v := &Validator{registry: registry(reg), class: class}
	for _, opt := range opts {
		opt(&v.cfg)
	}
	return v
}

// For creates and compiles a validator for T.
func For[T any](reg *Registry, opts ...ValidatorOption) (*Validator, error) {
	v := NewValidator(reg, ClassOf[T](), opts...)
	if err := v.Compile(); err != nil {
		return nil, err
	}
	return v, nil
}

// MustCompile is like For but panics when T declares no rules.
func MustCompile[T any](reg *Registry, opts ...ValidatorOption) *Validator {
	v, err := For[T](reg, opts...)
	if err != nil {
		panic(exceptions.NewCritical(fmt.Errorf("%w: %s", err, ClassOf[T]())))
	}
	return v
}

// Compile builds the schemas from the registry. Only the first call does
// any work; later calls return the same result, and panic again when the
// first one panicked.
func (v *Validator) Compile() error {
	v.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				v.fault = r
			}
		}()
		s, err := v.registry.Compile(v.class, v.cfg.compile...)
		if err != nil {
			v.err = err
			return
		}
		v.schemas.Store(s)
	})
	if v.fault != nil {
		panic(v.fault)
	}
	return v.err
}

// IsCompiled reports whether Compile succeeded.
func (v *Validator) IsCompiled() bool {
	return v.schemas.Load() != nil
}

// Class returns the class the validator was created for.
func (v *Validator) Class() Class {
	return v.class
}

// Schemas returns the compiled schemas. It panics before Compile.
func (v *Validator) Schemas() *Schemas {
	s := v.schemas.Load()
	if s == nil {
		panic(exceptions.NewCritical(ErrNotCompiled))
	}
	return s
}

// ID validates a primary key: a bare value for a simple key, an object
// holding every key property for a composite one. It panics when the class
// has no primary key.
func (v *Validator) ID(input any) (any, error) {
	s := v.Schemas()
	guard.Assert(s.HasPrimaryKey(), ErrNoPrimaryKey)
	return v.validate(s, s.PrimaryKey, input, nil)
}

// Whole validates a complete model.
func (v *Validator) Whole(input any, opts ...Option) (map[string]any, error) {
	s := v.Schemas()
	return v.validateObject(s, s.Whole, input, opts)
}

// Partial validates a partial model: absent properties are accepted and get
// no defaults, present ones must satisfy their rules.
func (v *Validator) Partial(input any, opts ...Option) (map[string]any, error) {
	s := v.Schemas()
	return v.validateObject(s, s.Partial, input, opts)
}

func (v *Validator) validateObject(s *Schemas, n schema.Node, input any, opts []Option) (map[string]any, error) {
	out, err := v.validate(s, n, input, opts)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		message := `"value" must be of type object`
		if out == nil {
			message = `"value" is required`
		}
		return nil, exceptions.NewValidationError(exceptions.ValidationErrorItem{
			Message: message,
			Path:    []string{},
			Value:   out,
		})
	}
	return m, nil
}

func (v *Validator) validate(s *Schemas, n schema.Node, input any, opts []Option) (any, error) {
	value, err := normalizeInput(input)
	if err != nil {
		return nil, exceptions.NewValidationError(exceptions.ValidationErrorItem{
			Message: err.Error(),
			Path:    []string{},
			Value:   input,
		})
	}

	o := resolveOptions(schema.DefaultOptions(), s.Options, v.cfg.options, opts)
	out, err := schema.Validate(n, value, o)
	if err != nil {
		return nil, toValidationError(err)
	}
	return out, nil
}

func toValidationError(err error) *exceptions.ValidationError {
	var errs schema.Errors
	if !errors.As(err, &errs) {
		return exceptions.NewValidationError(exceptions.ValidationErrorItem{
			Message: err.Error(),
			Path:    []string{},
		})
	}

	items := make([]exceptions.ValidationErrorItem, len(errs))
	for i, item := range errs {
		items[i] = exceptions.ValidationErrorItem{
			Message: item.Message,
			Path:    item.Path,
			Value:   item.Value,
		}
	}
	return exceptions.NewValidationError(items...)
}

// normalizeInput turns structs into their JSON object form. Other values
// are passed through.
func normalizeInput(input any) (any, error) {
	switch input.(type) {
	case nil:
		return nil, nil
	case time.Time, *big.Int, json.Number:
		return input, nil
	}

	rv := reflect.ValueOf(input)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return input, nil
	}

	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvertingInput, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConvertingInput, err)
	}
	if m, ok := out.(map[string]any); ok {
		restoreTimes(rv.Type(), m)
	}
	return out, nil
}

// restoreTimes turns the strings encoding/json wrote for time.Time fields of
// t back into time.Time values, so date nodes format them themselves.
func restoreTimes(t reflect.Type, out map[string]any) {
	for i := range t.NumField() {
		field := t.Field(i)
		ft := field.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if field.Anonymous && field.Tag.Get("json") == "" && ft.Kind() == reflect.Struct {
			restoreTimes(ft, out)
			continue
		}
		if !field.IsExported() {
			continue
		}
		name, skip := propertyName(field)
		if skip {
			continue
		}

		switch v := out[name].(type) {
		case string:
			if ft != timeType {
				continue
			}
			if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
				out[name] = ts
			}
		case map[string]any:
			if ft.Kind() == reflect.Struct && ft != timeType {
				restoreTimes(ft, v)
			}
		}
	}
}
