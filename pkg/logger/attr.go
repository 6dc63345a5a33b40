package logger

import (
	"fmt"
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Class records a model type under the key "class". Accepts anything with a
// String method (reflect.Type in practice); nil yields an empty Attr.
func Class(class fmt.Stringer) slog.Attr {
	if class == nil {
		return slog.Attr{}
	}
	return slog.String("class", class.String())
}

// Property records a model property name under the key "property".
func Property(name string) slog.Attr {
	return slog.String("property", name)
}

// Rule records a rule description under the key "rule".
func Rule(rule any) slog.Attr {
	if rule == nil {
		return slog.Attr{}
	}
	return slog.String("rule", fmt.Sprint(rule))
}

// Count records a count under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
