package rule

import (
	"fmt"

	"github.com/gennovative/micro-fleet-common/pkg/schema"
)

// Type is a type initializer. It decides the base schema of a property.
type Type interface {
	fmt.Stringer
	isType()
}

// StringType declares a string property.
type StringType struct {
	AllowEmpty bool
}

// NumberType declares a float64 property.
type NumberType struct {
	Convert bool
}

// BooleanType declares a bool property.
type BooleanType struct {
	Convert bool
}

// BigIntType declares an arbitrary size integer, kept as a decimal string
// unless Convert is set.
type BigIntType struct {
	Convert bool
}

// DateType declares an ISO 8601 date string.
type DateType struct {
	UTC     bool
	Convert bool
}

// ArrayType declares a list. A nil Items accepts any element.
type ArrayType struct {
	Items schema.Node
}

func (StringType) isType()  {}
func (NumberType) isType()  {}
func (BooleanType) isType() {}
func (BigIntType) isType()  {}
func (DateType) isType()    {}
func (ArrayType) isType()   {}

func (t StringType) String() string  { return fmt.Sprintf("string(allowEmpty=%t)", t.AllowEmpty) }
func (t NumberType) String() string  { return fmt.Sprintf("number(convert=%t)", t.Convert) }
func (t BooleanType) String() string { return fmt.Sprintf("boolean(convert=%t)", t.Convert) }
func (t BigIntType) String() string  { return fmt.Sprintf("bigint(convert=%t)", t.Convert) }
func (t DateType) String() string {
	return fmt.Sprintf("date(utc=%t, convert=%t)", t.UTC, t.Convert)
}

func (t ArrayType) String() string {
	if t.Items == nil {
		return "array(any)"
	}
	return fmt.Sprintf("array(%s)", t.Items.Kind())
}
