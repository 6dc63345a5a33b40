package rule

import (
	"fmt"
	"strings"
)

// Rule is a constraint transform applied on top of a property's base schema,
// in declaration order.
type Rule interface {
	fmt.Stringer
	isRule()
}

// MinLength bounds string length in characters or array length in items.
type MinLength struct{ N int }

// MaxLength bounds string length in characters or array length in items.
type MaxLength struct{ N int }

// Pattern requires strings to match a regular expression.
type Pattern struct{ Expr string }

type Trim struct{}

type Email struct{}

type URI struct{}

type UUID struct{}

type Lowercase struct{}

type Uppercase struct{}

// Min bounds numbers and big integers from below (inclusive).
type Min struct{ Value float64 }

// Max bounds numbers and big integers from above (inclusive).
type Max struct{ Value float64 }

type Integer struct{}

// Only restricts the property to a fixed set of values.
type Only struct{ Values []any }

// Default is produced when the property is absent.
type Default struct{ Value any }

// Required rejects absent values; AllowNull additionally accepts null.
type Required struct{ AllowNull bool }

// Nullable accepts null without making the property mandatory.
type Nullable struct{}

// Single lets an array property accept one bare value.
type Single struct{}

// Label replaces the property name in error messages.
type Label struct{ Text string }

func (MinLength) isRule() {}
func (MaxLength) isRule() {}
func (Pattern) isRule()   {}
func (Trim) isRule()      {}
func (Email) isRule()     {}
func (URI) isRule()       {}
func (UUID) isRule()      {}
func (Lowercase) isRule() {}
func (Uppercase) isRule() {}
func (Min) isRule()       {}
func (Max) isRule()       {}
func (Integer) isRule()   {}
func (Only) isRule()      {}
func (Default) isRule()   {}
func (Required) isRule()  {}
func (Nullable) isRule()  {}
func (Single) isRule()    {}
func (Label) isRule()     {}

func (r MinLength) String() string { return fmt.Sprintf("minLength(%d)", r.N) }
func (r MaxLength) String() string { return fmt.Sprintf("maxLength(%d)", r.N) }
func (r Pattern) String() string   { return fmt.Sprintf("pattern(/%s/)", r.Expr) }
func (Trim) String() string        { return "trim" }
func (Email) String() string       { return "email" }
func (URI) String() string         { return "uri" }
func (UUID) String() string        { return "uuid" }
func (Lowercase) String() string   { return "lowercase" }
func (Uppercase) String() string   { return "uppercase" }
func (r Min) String() string       { return fmt.Sprintf("min(%v)", r.Value) }
func (r Max) String() string       { return fmt.Sprintf("max(%v)", r.Value) }
func (Integer) String() string     { return "integer" }
func (r Default) String() string   { return fmt.Sprintf("default(%v)", r.Value) }
func (Nullable) String() string    { return "nullable" }
func (Single) String() string      { return "single" }
func (r Label) String() string     { return fmt.Sprintf("label(%q)", r.Text) }

func (r Only) String() string {
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = fmt.Sprint(v)
	}
	return "only(" + strings.Join(parts, ", ") + ")"
}

func (r Required) String() string {
	if r.AllowNull {
		return "required(allowNull)"
	}
	return "required"
}

// Describe renders a rule list the way it was declared.
func Describe(rules []Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, ".")
}
