package schema

import (
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPINode delegates validation to a kin-openapi schema. Values are
// normalised through JSON before being visited, so the cleaned output uses
// JSON types (float64, map[string]any, []any).
type OpenAPINode struct {
	flags  Flags
	schema *openapi3.Schema
}

// OpenAPI wraps s as a node. It is the usual way to plug a hand-written
// schema in as a raw property schema.
func OpenAPI(s *openapi3.Schema) OpenAPINode {
	return OpenAPINode{schema: s}
}

func (n OpenAPINode) Kind() Kind   { return KindOpenAPI }
func (n OpenAPINode) Flags() Flags { return n.flags }

func (n OpenAPINode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

func (n OpenAPINode) check(value any, st *state) any {
	normalized, err := normalizeJSON(value)
	if err != nil {
		st.fail(n.flags, "openapi.base", value, nil, "must be a JSON value")
		return value
	}
	if n.schema == nil {
		return normalized
	}
	if err := n.schema.VisitJSON(normalized, openapi3.MultiErrors()); err != nil {
		n.report(err, st)
		return value
	}
	return normalized
}

func (n OpenAPINode) report(err error, st *state) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			n.report(inner, st)
		}
	case *openapi3.SchemaError:
		f, target := n.flags, st
		for _, segment := range e.JSONPointer() {
			f, target = Flags{}, target.at(segment)
		}
		code := "openapi"
		if e.SchemaField != "" {
			code += "." + e.SchemaField
		}
		target.fail(f, code, e.Value, nil, "%s", strings.TrimSpace(e.Reason))
	default:
		st.fail(n.flags, "openapi", nil, nil, "%s", err.Error())
	}
}

func normalizeJSON(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToOpenAPI renders n as an OpenAPI 3 schema. Object children that are
// required end up in the Required list.
func ToOpenAPI(n Node) *openapi3.Schema {
	var s *openapi3.Schema
	switch node := n.(type) {
	case StringNode:
		s = openapi3.NewStringSchema()
		if node.hasMin {
			s.MinLength = uint64(node.min)
		} else if !node.allowEmpty {
			s.MinLength = 1
		}
		if node.hasMax {
			max := uint64(node.max)
			s.MaxLength = &max
		}
		if node.pattern != nil {
			s.Pattern = node.pattern.String()
		}
		switch {
		case node.email:
			s.Format = "email"
		case node.uri:
			s.Format = "uri"
		case node.uuid:
			s.Format = "uuid"
		}
	case NumberNode:
		if node.integer {
			s = openapi3.NewIntegerSchema()
		} else {
			s = openapi3.NewFloat64Schema()
		}
		if node.hasMin {
			min := node.min
			s.Min = &min
		}
		if node.hasMax {
			max := node.max
			s.Max = &max
		}
	case BooleanNode:
		s = openapi3.NewBoolSchema()
	case BigIntNode:
		s = openapi3.NewStringSchema().WithPattern(bigIntPattern.String())
		s.Format = "bigint"
	case DateNode:
		s = openapi3.NewStringSchema().WithPattern(node.pattern().String())
		s.Format = "date-time"
	case ArrayNode:
		s = openapi3.NewArraySchema()
		if node.items != nil {
			s.Items = openapi3.NewSchemaRef("", ToOpenAPI(node.items))
		} else {
			s.Items = openapi3.NewSchemaRef("", &openapi3.Schema{})
		}
		if node.hasMin {
			s.MinItems = uint64(node.min)
		}
		if node.hasMax {
			max := uint64(node.max)
			s.MaxItems = &max
		}
	case ObjectNode:
		s = openapi3.NewObjectSchema()
		for _, key := range node.keys {
			child := node.children[key]
			s.Properties[key] = openapi3.NewSchemaRef("", ToOpenAPI(child))
			if IsRequired(child) {
				s.Required = append(s.Required, key)
			}
		}
	case OpenAPINode:
		if node.schema == nil {
			s = &openapi3.Schema{}
		} else {
			clone := *node.schema
			s = &clone
		}
	default:
		s = &openapi3.Schema{}
	}

	f := n.Flags()
	if f.AllowNull {
		s.Nullable = true
	}
	if f.HasDefault {
		s.Default = f.Default
	}
	if len(f.Only) > 0 {
		s.Enum = append([]any(nil), f.Only...)
	}
	if f.Label != "" {
		s.Title = f.Label
	}
	return s
}
