package validation

import (
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
	"github.com/gennovative/micro-fleet-common/pkg/guard"
	"github.com/gennovative/micro-fleet-common/pkg/validation/rule"
)

// TagName is the struct tag read by FromStruct.
const TagName = "validate"

// commaEscape stands for a literal comma inside a tag value.
const commaEscape = "0x2C"

var (
	timeType   = reflect.TypeFor[time.Time]()
	bigIntType = reflect.TypeFor[*big.Int]()
)

// FromStruct declares the rules found in the `validate` tags of T's fields
// and returns T's class. The property name is taken from the json tag, or
// the field name. Fields without a validate tag are ignored.
//
// A tag is a comma separated list. The kind (string, number, boolean,
// bigint, date, array, any) is inferred from the field type when omitted.
//
//	Name string   `json:"name" validate:"min=3,max=10,pattern=^[\\w -]+$,required"`
//	Role string   `json:"role" validate:"only=admin|user,default=user"`
//	Tags []string `json:"tags" validate:"array,items=string,single,max=5"`
//	ID   string   `json:"id" validate:"bigint,id"`
//
// Other flags: noempty, convert, noconvert, utc, nullable, trim, email, uri,
// uuid, lowercase, uppercase, integer, label=Text. Write 0x2C for a comma
// inside a value. An invalid tag panics.
func FromStruct[T any](reg *Registry) Class {
	class := ClassOf[T]()
	t := class
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	guard.Assert(t.Kind() == reflect.Struct, fmt.Errorf("%w: %s", ErrNotAStruct, class))

	Define(reg, class, structProps(t)...)
	return class
}

func structProps(t reflect.Type) []Property {
	var props []Property
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Anonymous && field.Tag.Get("json") == "" && field.Type.Kind() == reflect.Struct {
			props = append(props, structProps(field.Type)...)
			continue
		}
		if !field.IsExported() {
			continue
		}

		name, skip := propertyName(field)
		if skip {
			continue
		}

		tag, ok := field.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}

		decorators, err := parseTag(tag, field.Type)
		if err != nil {
			panic(exceptions.NewCritical(fmt.Errorf("%w: field %s: %w", ErrInvalidTag, field.Name, err)))
		}
		props = append(props, Prop(name, decorators...))
	}
	return props
}

func propertyName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return field.Name, false
}

type tagToken struct {
	key   string
	value string
	set   bool
}

func splitTag(tag string) []tagToken {
	var tokens []tagToken
	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, set := strings.Cut(part, "=")
		tokens = append(tokens, tagToken{
			key:   strings.ToLower(strings.TrimSpace(key)),
			value: strings.ReplaceAll(value, commaEscape, ","),
			set:   set,
		})
	}
	return tokens
}

var tagKinds = map[string]bool{
	"string": true, "number": true, "boolean": true, "bigint": true,
	"date": true, "array": true, "any": true,
}

func parseTag(tag string, fieldType reflect.Type) ([]PropertyDecorator, error) {
	tokens := splitTag(tag)

	kind := inferKind(fieldType)
	var opts []TypeOption
	var items string
	for _, tok := range tokens {
		switch {
		case tagKinds[tok.key]:
			kind = tok.key
		case tok.key == "noempty":
			opts = append(opts, AllowEmpty(false))
		case tok.key == "convert":
			opts = append(opts, Convert(true))
		case tok.key == "noconvert":
			opts = append(opts, Convert(false))
		case tok.key == "utc":
			opts = append(opts, UTC())
		case tok.key == "items":
			items = tok.value
		}
	}
	if kind == "array" && items == "" && fieldType.Kind() == reflect.Slice {
		items = inferKind(fieldType.Elem())
	}

	var decorators []PropertyDecorator
	if typ, err := typeDecorator(kind, items, opts); err != nil {
		return nil, err
	} else if typ != nil {
		decorators = append(decorators, typ)
	}

	for _, tok := range tokens {
		if tagKinds[tok.key] {
			continue
		}
		d, err := ruleDecorator(kind, tok)
		if err != nil {
			return nil, err
		}
		if d != nil {
			decorators = append(decorators, d)
		}
	}
	return decorators, nil
}

func typeDecorator(kind, items string, opts []TypeOption) (PropertyDecorator, error) {
	if kind == "" || kind == "any" {
		return nil, nil
	}
	if kind != "array" {
		return Type(typeFor(kind, opts)), nil
	}
	if items == "" || items == "any" {
		return Array(nil), nil
	}
	if !tagKinds[items] || items == "array" {
		return nil, fmt.Errorf("unsupported items kind %q", items)
	}
	return Array(initNode(typeFor(items, nil))), nil
}

// typeFor builds the type initializer of a scalar kind the way the matching
// builder does.
func typeFor(kind string, opts []TypeOption) rule.Type {
	o := applyTypeOptions(opts)
	switch kind {
	case "string":
		return rule.StringType{AllowEmpty: orDefault(o.allowEmpty, true)}
	case "number":
		return rule.NumberType{Convert: orDefault(o.convert, true)}
	case "boolean":
		return rule.BooleanType{Convert: orDefault(o.convert, true)}
	case "bigint":
		return rule.BigIntType{Convert: orDefault(o.convert, false)}
	case "date":
		return rule.DateType{UTC: o.utc, Convert: orDefault(o.convert, false)}
	}
	return nil
}

func ruleDecorator(kind string, tok tagToken) (PropertyDecorator, error) {
	switch tok.key {
	case "noempty", "convert", "noconvert", "utc", "items":
		return nil, nil
	case "id":
		return ID(), nil
	case "required":
		return Required(), nil
	case "nullable":
		return Nullable(), nil
	case "trim":
		return Trim(), nil
	case "email":
		return Email(), nil
	case "uri", "url":
		return URI(), nil
	case "uuid":
		return UUID(), nil
	case "lowercase":
		return Lowercase(), nil
	case "uppercase":
		return Uppercase(), nil
	case "integer":
		return Integer(), nil
	case "single":
		return Single(), nil
	case "label":
		return Label(tok.value), nil
	case "pattern":
		if _, err := regexp.Compile(tok.value); err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		return Rules(rule.Pattern{Expr: tok.value}), nil
	case "min", "max":
		return boundDecorator(kind, tok)
	case "default":
		v, err := tagValue(kind, tok.value)
		if err != nil {
			return nil, err
		}
		return Default(v), nil
	case "only":
		var values []any
		for raw := range strings.SplitSeq(tok.value, "|") {
			v, err := tagValue(kind, raw)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return Only(values...), nil
	}
	return nil, fmt.Errorf("unknown key %q", tok.key)
}

func boundDecorator(kind string, tok tagToken) (PropertyDecorator, error) {
	switch kind {
	case "string", "array":
		n, err := strconv.Atoi(tok.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tok.key, err)
		}
		if tok.key == "min" {
			return MinLength(n), nil
		}
		return MaxLength(n), nil
	case "number", "bigint":
		f, err := strconv.ParseFloat(tok.value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tok.key, err)
		}
		if tok.key == "min" {
			return Min(f), nil
		}
		return Max(f), nil
	}
	return nil, fmt.Errorf("%s does not apply to %s", tok.key, kind)
}

func tagValue(kind, raw string) (any, error) {
	switch kind {
	case "number":
		return strconv.ParseFloat(raw, 64)
	case "boolean":
		return strconv.ParseBool(raw)
	}
	return raw, nil
}

func inferKind(t reflect.Type) string {
	if t == bigIntType {
		return "bigint"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "date"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return ""
}
