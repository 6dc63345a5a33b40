package schema

import (
	"fmt"
	"strings"
)

// Item describes one failed constraint.
type Item struct {
	// Code is a stable identifier such as "string.min" or "any.required",
	// suitable as a translation key.
	Code    string
	Message string
	// Path locates the field; empty for whole-value errors.
	Path    []string
	Value   any
	Context map[string]any
}

// Field joins the item's path with dots.
func (i Item) Field() string {
	return strings.Join(i.Path, ".")
}

// Errors collects items in reporting order and implements error.
type Errors []Item

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e))
	for _, item := range e {
		parts = append(parts, item.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any item targets field.
func (e Errors) Has(field string) bool {
	for _, item := range e {
		if item.Field() == field {
			return true
		}
	}
	return false
}

// Codes returns the item codes reported for field.
func (e Errors) Codes(field string) []string {
	var codes []string
	for _, item := range e {
		if item.Field() == field {
			codes = append(codes, item.Code)
		}
	}
	return codes
}

// state carries the path and options of one Validate call. Children share
// the error list of their parent.
type state struct {
	path []string
	opts Options
	errs *Errors
}

func newState(opts Options) *state {
	return &state{opts: opts, errs: &Errors{}}
}

func (s *state) at(segment string) *state {
	path := make([]string, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return &state{path: append(path, segment), opts: s.opts, errs: s.errs}
}

// halted reports whether AbortEarly stops further checks.
func (s *state) halted() bool {
	return s.opts.AbortEarly && len(*s.errs) > 0
}

func (s *state) count() int {
	return len(*s.errs)
}

func (s *state) label(f Flags) string {
	if f.Label != "" {
		return f.Label
	}
	if len(s.path) == 0 {
		return "value"
	}
	return strings.Join(s.path, ".")
}

// fail records an item. The message is prefixed with the quoted label.
func (s *state) fail(f Flags, code string, value any, details map[string]any, format string, args ...any) {
	if s.halted() {
		return
	}
	label := s.label(f)
	path := make([]string, len(s.path))
	copy(path, s.path)
	ctx := map[string]any{"label": label}
	for k, v := range details {
		ctx[k] = v
	}
	*s.errs = append(*s.errs, Item{
		Code:    code,
		Message: fmt.Sprintf("%q %s", label, fmt.Sprintf(format, args...)),
		Path:    path,
		Value:   value,
		Context: ctx,
	})
}
