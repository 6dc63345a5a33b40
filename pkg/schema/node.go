package schema

import (
	"math/big"
	"reflect"
	"slices"
)

// Kind names the primitive a node validates.
type Kind string

const (
	KindAny     Kind = "any"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindBigInt  Kind = "bigint"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindOpenAPI Kind = "openapi"
)

// Presence controls how an absent value is treated.
type Presence int

const (
	PresenceOptional Presence = iota
	PresenceRequired
)

// Flags are shared by every node kind.
type Flags struct {
	Presence   Presence
	AllowNull  bool
	Default    any
	HasDefault bool
	Only       []any
	Label      string
}

// Node is an immutable schema element. Implementations live in this package.
type Node interface {
	Kind() Kind
	Flags() Flags
	withFlags(Flags) Node
	// check validates a present, non-null value (or a null one the node does
	// not allow) and returns the cleaned value.
	check(value any, st *state) any
}

// Options tune a single Validate call.
type Options struct {
	// AbortEarly stops at the first failed constraint.
	AbortEarly bool
	// AllowUnknown keeps object keys that have no schema.
	AllowUnknown bool
	// StripUnknown removes object keys that have no schema. Takes precedence
	// over AllowUnknown.
	StripUnknown bool
}

// DefaultOptions collects every error and drops unknown keys.
func DefaultOptions() Options {
	return Options{AbortEarly: false, AllowUnknown: true, StripUnknown: true}
}

// Validate runs n against value. A nil value counts as absent. The returned
// error, when non-nil, is of type Errors.
func Validate(n Node, value any, opts Options) (any, error) {
	st := newState(opts)
	out, _ := run(n, value, value != nil, st)
	if st.count() > 0 {
		return nil, *st.errs
	}
	return out, nil
}

// run applies presence, null, default and allowed-value handling around the
// kind-specific check. keep is false when the value should be left out of the
// parent object.
func run(n Node, value any, present bool, st *state) (out any, keep bool) {
	if st.halted() {
		return nil, false
	}

	f := n.Flags()
	if !present {
		if f.HasDefault {
			return defaultValue(n, f.Default), true
		}
		if f.Presence == PresenceRequired {
			st.fail(f, "any.required", nil, nil, "is required")
		}
		return nil, false
	}

	if value == nil && f.AllowNull {
		return nil, true
	}

	before := st.count()
	out = n.check(value, st)
	if st.count() > before {
		return value, true
	}

	if len(f.Only) > 0 && !containsValue(f.Only, out) {
		st.fail(f, "any.only", value, map[string]any{"valids": f.Only}, "must be one of %v", f.Only)
		return value, true
	}
	return out, true
}

// defaultValue converts a default the way a supplied value would be, so a
// YAML `default: 5` on a number comes out as float64. A default the node
// rejects is returned verbatim.
func defaultValue(n Node, value any) any {
	if value == nil {
		return nil
	}
	st := newState(DefaultOptions())
	out := n.check(value, st)
	if st.count() > 0 {
		return value
	}
	return out
}

// Required marks n as mandatory.
func Required(n Node) Node {
	f := n.Flags()
	f.Presence = PresenceRequired
	return n.withFlags(f)
}

// Optional lifts the mandatory flag, keeping every other constraint.
func Optional(n Node) Node {
	f := n.Flags()
	f.Presence = PresenceOptional
	return n.withFlags(f)
}

// IsRequired reports whether n rejects absent values.
func IsRequired(n Node) bool {
	return n.Flags().Presence == PresenceRequired
}

// Nullable lets n accept an explicit null.
func Nullable(n Node) Node {
	f := n.Flags()
	f.AllowNull = true
	return n.withFlags(f)
}

// Default makes n produce value when the input is absent. The value goes
// through the node's conversions, but is not rejected when it fails them.
func Default(n Node, value any) Node {
	f := n.Flags()
	f.Default = value
	f.HasDefault = true
	return n.withFlags(f)
}

// WithoutDefault removes a default set by Default.
func WithoutDefault(n Node) Node {
	f := n.Flags()
	f.Default = nil
	f.HasDefault = false
	return n.withFlags(f)
}

// Only restricts n to the given values, compared after conversion.
func Only(n Node, values ...any) Node {
	f := n.Flags()
	f.Only = slices.Clone(values)
	return n.withFlags(f)
}

// Label overrides the name used in error messages.
func Label(n Node, label string) Node {
	f := n.Flags()
	f.Label = label
	return n.withFlags(f)
}

func containsValue(values []any, v any) bool {
	for _, candidate := range values {
		if equalValues(candidate, v) {
			return true
		}
	}
	return false
}

// equalValues compares numbers by value regardless of their Go type.
func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	if ba, ok := a.(*big.Int); ok {
		if bb, ok := b.(*big.Int); ok {
			return ba.Cmp(bb) == 0
		}
	}
	return reflect.DeepEqual(a, b)
}

// toFloat converts Go numeric kinds. Strings are not numbers here.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
