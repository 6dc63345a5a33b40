package exceptions

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorItem describes one failed constraint.
type ValidationErrorItem struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
	Value   any      `json:"value,omitempty"`
}

// Field joins the item's path with dots. Whole-object items return "".
func (i ValidationErrorItem) Field() string {
	return strings.Join(i.Path, ".")
}

// ValidationError is a MinorException holding field-level items.
type ValidationError struct {
	MinorException
	items []ValidationErrorItem
}

// NewValidationError builds a ValidationError from items. The message
// summarises every item.
func NewValidationError(items ...ValidationErrorItem) *ValidationError {
	ve := &ValidationError{items: items}
	ve.Message = summarize(items)
	ve.Details = ve.items
	ve.cause = ErrValidation
	return ve
}

func summarize(items []ValidationErrorItem) string {
	if len(items) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if field := item.Field(); field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", field, item.Message))
			continue
		}
		parts = append(parts, item.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Items returns the items in the order they were reported.
func (ve *ValidationError) Items() []ValidationErrorItem {
	return ve.items
}

func (ve *ValidationError) Len() int {
	return len(ve.items)
}

// Has reports whether any item targets field (dot-joined path).
func (ve *ValidationError) Has(field string) bool {
	for _, item := range ve.items {
		if item.Field() == field {
			return true
		}
	}
	return false
}

// Get returns the messages reported for field.
func (ve *ValidationError) Get(field string) []string {
	var messages []string
	for _, item := range ve.items {
		if item.Field() == field {
			messages = append(messages, item.Message)
		}
	}
	return messages
}

// Fields lists the distinct failing fields in reporting order.
func (ve *ValidationError) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, item := range ve.items {
		field := item.Field()
		if !seen[field] {
			fields = append(fields, field)
			seen[field] = true
		}
	}
	return fields
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
