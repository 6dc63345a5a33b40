package guard

import (
	"errors"
	"reflect"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
)

// NotNull panics with an InvalidArgumentException if value is nil, including
// nil pointers, maps, slices, channels, functions and interfaces.
func NotNull(name string, value any) {
	if isNil(value) {
		panic(exceptions.NewInvalidArgument(name, "must not be null"))
	}
}

// NotEmpty panics if value is nil or has zero length. Values without a length
// are only checked for nil.
func NotEmpty(name string, value any) {
	NotNull(name, value)
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		if rv.Len() == 0 {
			panic(exceptions.NewInvalidArgument(name, "must not be empty"))
		}
	}
}

// IsFunc panics unless value is a non-nil function.
func IsFunc(name string, value any) {
	NotNull(name, value)
	if reflect.TypeOf(value).Kind() != reflect.Func {
		panic(exceptions.NewInvalidArgument(name, "must be a function"))
	}
}

// Assert panics with a CriticalException wrapping err when cond is false.
func Assert(cond bool, err error) {
	if !cond {
		panic(exceptions.NewCritical(err))
	}
}

// Truthy is Assert with a plain message.
func Truthy(cond bool, message string) {
	Assert(cond, errors.New(message))
}

// Falsey panics when cond is true.
func Falsey(cond bool, message string) {
	Assert(!cond, errors.New(message))
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
