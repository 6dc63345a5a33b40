package validation

import (
	"fmt"
	"regexp"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
	"github.com/gennovative/micro-fleet-common/pkg/guard"
	"github.com/gennovative/micro-fleet-common/pkg/schema"
	"github.com/gennovative/micro-fleet-common/pkg/validation/rule"
)

// PropertyDecorator records validation metadata for one property.
type PropertyDecorator func(meta *ClassMetadata, property string)

// ClassDecorator records validation metadata for a whole class.
type ClassDecorator func(meta *ClassMetadata)

// Property pairs a property name with its decorators.
type Property struct {
	Name       string
	Decorators []PropertyDecorator
}

// Prop declares a property for Define.
func Prop(name string, decorators ...PropertyDecorator) Property {
	return Property{Name: name, Decorators: decorators}
}

// Define declares properties of class in reg. A nil reg means DefaultRegistry.
func Define(reg *Registry, class Class, props ...Property) {
	registry(reg).Define(class, props...)
}

// Override replaces every property-derived schema of class in reg. A nil reg
// means DefaultRegistry.
func Override(reg *Registry, class Class, o ClassOverride) {
	registry(reg).DecorateClass(class, WithOverride(o))
}

// WithOverride is the class decorator behind Override.
func WithOverride(o ClassOverride) ClassDecorator {
	guard.Assert(!o.empty(), ErrEmptyOverride)
	if o.RawSchema != nil {
		kind := o.RawSchema.Kind()
		guard.Assert(kind == schema.KindObject || kind == schema.KindOpenAPI,
			fmt.Errorf("%w: got %s", ErrRawSchemaNotObject, kind))
	}
	return func(meta *ClassMetadata) {
		meta.Override = &o
	}
}

func registry(reg *Registry) *Registry {
	if reg == nil {
		return DefaultRegistry
	}
	return reg
}

// TypeOption tunes a type initializer. Options a kind does not use are
// ignored.
type TypeOption func(*typeOptions)

type typeOptions struct {
	allowEmpty *bool
	convert    *bool
	utc        bool
}

// AllowEmpty controls whether "" is a valid string. Strings accept it by
// default.
func AllowEmpty(allow bool) TypeOption {
	return func(o *typeOptions) {
		o.allowEmpty = &allow
	}
}

// Convert controls coercion of input into the kind's Go type. Numbers and
// booleans convert by default, big integers and dates do not.
func Convert(convert bool) TypeOption {
	return func(o *typeOptions) {
		o.convert = &convert
	}
}

// UTC restricts dates to the UTC ISO 8601 form.
func UTC() TypeOption {
	return func(o *typeOptions) {
		o.utc = true
	}
}

func applyTypeOptions(opts []TypeOption) typeOptions {
	var o typeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func orDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func setType(t rule.Type) PropertyDecorator {
	return func(meta *ClassMetadata, property string) {
		meta.Property(property).SetType(t)
	}
}

func addRule(r rule.Rule) PropertyDecorator {
	return func(meta *ClassMetadata, property string) {
		meta.Property(property).AddRule(r)
	}
}

// String declares a string property.
func String(opts ...TypeOption) PropertyDecorator {
	return setType(typeFor("string", opts))
}

// Number declares a numeric property.
func Number(opts ...TypeOption) PropertyDecorator {
	return setType(typeFor("number", opts))
}

// Boolean declares a boolean property.
func Boolean(opts ...TypeOption) PropertyDecorator {
	return setType(typeFor("boolean", opts))
}

// BigInt declares an arbitrary size integer, such as a database key.
func BigInt(opts ...TypeOption) PropertyDecorator {
	return setType(typeFor("bigint", opts))
}

// DateString declares an ISO 8601 date.
func DateString(opts ...TypeOption) PropertyDecorator {
	return setType(typeFor("date", opts))
}

// Array declares a list whose elements match items. A nil items accepts
// anything.
func Array(items schema.Node) PropertyDecorator {
	return setType(rule.ArrayType{Items: items})
}

// Raw makes node the property's schema, ignoring every other rule.
func Raw(node schema.Node) PropertyDecorator {
	guard.NotNull("node", node)
	return func(meta *ClassMetadata, property string) {
		meta.Property(property).Raw = node
	}
}

// ID marks the property as (part of) the primary key.
func ID() PropertyDecorator {
	return func(meta *ClassMetadata, property string) {
		meta.MarkPrimaryKey(property)
	}
}

// Required makes the property mandatory and rejects null.
func Required() PropertyDecorator {
	return addRule(rule.Required{})
}

// RequiredNullable requires the property but accepts null.
func RequiredNullable() PropertyDecorator {
	return addRule(rule.Required{AllowNull: true})
}

// Nullable accepts null for the property.
func Nullable() PropertyDecorator {
	return addRule(rule.Nullable{})
}

// Only restricts the property to values.
func Only(values ...any) PropertyDecorator {
	return addRule(rule.Only{Values: values})
}

// Default sets the value produced when the property is absent.
func Default(value any) PropertyDecorator {
	return addRule(rule.Default{Value: value})
}

// MinLength bounds string characters or array items.
func MinLength(n int) PropertyDecorator {
	return addRule(rule.MinLength{N: n})
}

// MaxLength bounds string characters or array items.
func MaxLength(n int) PropertyDecorator {
	return addRule(rule.MaxLength{N: n})
}

// Pattern requires strings to match expr. An invalid expression panics.
func Pattern(expr string) PropertyDecorator {
	if _, err := regexp.Compile(expr); err != nil {
		panic(exceptions.NewCritical(fmt.Errorf("%w: %w", ErrInvalidPattern, err)))
	}
	return addRule(rule.Pattern{Expr: expr})
}

// Trim strips surrounding whitespace from a string before other checks.
func Trim() PropertyDecorator { return addRule(rule.Trim{}) }

// Email requires a string to be an email address.
func Email() PropertyDecorator { return addRule(rule.Email{}) }

// URI requires a string to be a valid URI.
func URI() PropertyDecorator { return addRule(rule.URI{}) }

// UUID requires a string to be a UUID.
func UUID() PropertyDecorator { return addRule(rule.UUID{}) }

// Lowercase converts a string to lower case.
func Lowercase() PropertyDecorator { return addRule(rule.Lowercase{}) }

// Uppercase converts a string to upper case.
func Uppercase() PropertyDecorator { return addRule(rule.Uppercase{}) }

// Integer rejects numbers with a fractional part.
func Integer() PropertyDecorator { return addRule(rule.Integer{}) }

// Single lets an array property accept a bare value.
func Single() PropertyDecorator {
	return addRule(rule.Single{})
}

// Min is an inclusive lower bound for numbers and big integers.
func Min(v float64) PropertyDecorator {
	return addRule(rule.Min{Value: v})
}

// Max is an inclusive upper bound for numbers and big integers.
func Max(v float64) PropertyDecorator {
	return addRule(rule.Max{Value: v})
}

// Label names the property in error messages.
func Label(text string) PropertyDecorator {
	return addRule(rule.Label{Text: text})
}

// Rules appends already built rules, as produced by the struct tag and YAML
// front-ends.
func Rules(rules ...rule.Rule) PropertyDecorator {
	return func(meta *ClassMetadata, property string) {
		p := meta.Property(property)
		for _, r := range rules {
			p.AddRule(r)
		}
	}
}

// Type sets an already built type initializer.
func Type(t rule.Type) PropertyDecorator {
	guard.NotNull("type", t)
	return setType(t)
}
