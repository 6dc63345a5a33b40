package validation

import (
	"fmt"
	"maps"
	"math"
	"math/big"
	"regexp"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/gennovative/micro-fleet-common/pkg/exceptions"
	"github.com/gennovative/micro-fleet-common/pkg/logger"
	"github.com/gennovative/micro-fleet-common/pkg/schema"
	"github.com/gennovative/micro-fleet-common/pkg/validation/rule"
)

// Schemas are the compiled, immutable schemas of one class.
type Schemas struct {
	// Whole validates a complete model, primary key included.
	Whole schema.Node
	// Partial validates a patch: every property optional, no defaults.
	Partial schema.Node
	// PrimaryKey validates a key value. Nil when no key was declared.
	PrimaryKey schema.Node
	// KeyNames lists the primary key properties in declaration order.
	KeyNames []string
	// Composite is true when PrimaryKey is an object over KeyNames.
	Composite bool
	// Options are the class's default validation options.
	Options []Option
}

// HasPrimaryKey reports whether a key schema was compiled.
func (s *Schemas) HasPrimaryKey() bool {
	return s.PrimaryKey != nil
}

// OpenAPI exports the compiled schemas as OpenAPI 3 schemas keyed "whole",
// "partial" and, when declared, "primaryKey".
func (s *Schemas) OpenAPI() openapi3.Schemas {
	out := openapi3.Schemas{
		"whole":   openapi3.NewSchemaRef("", schema.ToOpenAPI(s.Whole)),
		"partial": openapi3.NewSchemaRef("", schema.ToOpenAPI(s.Partial)),
	}
	if s.PrimaryKey != nil {
		out["primaryKey"] = openapi3.NewSchemaRef("", schema.ToOpenAPI(s.PrimaryKey))
	}
	return out
}

// CompileOption tunes Compile.
type CompileOption func(*compileOptions)

type compileOptions struct {
	requirePK   bool
	compositePK *bool
}

// RequirePK makes primary key properties mandatory in the whole schema.
func RequirePK(require bool) CompileOption {
	return func(o *compileOptions) {
		o.requirePK = require
	}
}

// CompositePK forces the key schema to be an object even for a single key,
// or a bare node when false and exactly one key exists.
func CompositePK(composite bool) CompileOption {
	return func(o *compileOptions) {
		o.compositePK = &composite
	}
}

// Compile builds the schemas of class and removes its metadata from the
// registry. It returns ErrNoValidator when nothing was declared. A rule that
// cannot apply to its property's type panics and leaves the metadata in
// place.
func (r *Registry) Compile(class Class, opts ...CompileOption) (*Schemas, error) {
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	meta, ok := r.entries[class]
	r.mu.Unlock()

	if !ok || meta.IsEmpty() {
		r.Delete(class)
		return nil, ErrNoValidator
	}

	var s *Schemas
	if meta.Override != nil {
		s = compileOverride(meta.Override, o)
	} else {
		s = compileProperties(meta, o)
	}
	r.Delete(class)

	r.log().Debug("validation schema compiled",
		logger.Class(class),
		logger.Count("properties", wholeLen(s.Whole)),
		logger.Count("keys", len(s.KeyNames)),
	)
	return s, nil
}

func compileProperties(meta *ClassMetadata, o compileOptions) *Schemas {
	whole := schema.Object()
	pk := make(map[string]schema.Node)

	for _, name := range meta.order {
		isKey := meta.IsPrimaryKey(name)

		var fallback rule.Type
		if isKey {
			fallback = rule.BigIntType{}
		}

		var node schema.Node
		if p, ok := meta.Properties[name]; ok {
			node = compileProperty(name, p.Schema(), fallback)
		} else {
			node = initNode(fallback)
		}

		if isKey {
			pk[name] = node
			if o.requirePK {
				node = schema.Required(node)
			}
		}
		whole = whole.Key(name, node)
	}

	return assemble(whole, pk, meta.PrimaryKeys, o, nil)
}

func compileOverride(ov *ClassOverride, o compileOptions) *Schemas {
	if ov.CompositePK != nil && o.compositePK == nil {
		o.compositePK = ov.CompositePK
	}
	o.requirePK = o.requirePK || ov.RequirePK

	keyNames := slices.Sorted(maps.Keys(ov.SchemaMapPK))

	var whole schema.Node
	if ov.RawSchema != nil {
		whole = ov.RawSchema
	} else {
		obj := schema.Object()
		for _, name := range slices.Sorted(maps.Keys(ov.SchemaMapModel)) {
			obj = obj.Key(name, ov.SchemaMapModel[name])
		}
		for _, name := range keyNames {
			node := ov.SchemaMapPK[name]
			if o.requirePK {
				node = schema.Required(node)
			}
			obj = obj.Key(name, node)
		}
		whole = obj
	}

	return assemble(whole, ov.SchemaMapPK, keyNames, o, slices.Clone(ov.Options))
}

func assemble(whole schema.Node, pk map[string]schema.Node, keyNames []string, o compileOptions, opts []Option) *Schemas {
	s := &Schemas{
		Whole:    schema.Required(whole),
		Partial:  schema.Required(partialOf(whole)),
		KeyNames: slices.Clone(keyNames),
		Options:  opts,
	}

	switch {
	case len(keyNames) == 0:
	case len(keyNames) > 1 || (o.compositePK != nil && *o.compositePK):
		obj := schema.Object()
		for _, name := range keyNames {
			obj = obj.Key(name, schema.Required(pk[name]))
		}
		s.PrimaryKey = schema.Required(obj)
		s.Composite = true
	default:
		s.PrimaryKey = schema.Required(pk[keyNames[0]])
	}
	return s
}

// partialOf makes every top-level property optional and drops its default:
// in a patch an absent property means "leave unchanged".
func partialOf(whole schema.Node) schema.Node {
	obj, ok := whole.(schema.ObjectNode)
	if !ok {
		return schema.Optional(schema.WithoutDefault(whole))
	}
	return obj.MapChildren(func(_ string, child schema.Node) schema.Node {
		return schema.Optional(schema.WithoutDefault(child))
	})
}

func wholeLen(n schema.Node) int {
	if obj, ok := n.(schema.ObjectNode); ok {
		return obj.Len()
	}
	return 1
}

func compileProperty(name string, ps PropertySchema, fallback rule.Type) schema.Node {
	switch ps := ps.(type) {
	case RawSchema:
		return ps.Node
	case DerivedSchema:
		t := ps.Type
		if t == nil {
			t = fallback
		}
		node, err := fold(t, ps.Rules)
		if err != nil {
			panic(exceptions.NewCritical(fmt.Errorf("property %q: %w", name, err)))
		}
		return node
	default:
		panic(exceptions.Criticalf("property %q: unknown schema source %T", name, ps))
	}
}

// fold applies rules left to right over the node of t.
func fold(t rule.Type, rules []rule.Rule) (schema.Node, error) {
	node := initNode(t)
	for _, r := range rules {
		next, err := applyRule(node, r)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

func initNode(t rule.Type) schema.Node {
	switch t := t.(type) {
	case nil:
		return schema.Any()
	case rule.StringType:
		return schema.String().AllowEmpty(t.AllowEmpty)
	case rule.NumberType:
		return schema.Number().Convert(t.Convert)
	case rule.BooleanType:
		return schema.Boolean().Convert(t.Convert)
	case rule.BigIntType:
		return schema.BigInt().Convert(t.Convert)
	case rule.DateType:
		return schema.DateString().UTC(t.UTC).Convert(t.Convert)
	case rule.ArrayType:
		return schema.Array(t.Items)
	default:
		panic(exceptions.Criticalf("unknown type initializer %T", t))
	}
}

func applyRule(n schema.Node, r rule.Rule) (schema.Node, error) {
	switch r := r.(type) {
	case rule.Required:
		n = schema.Required(n)
		if r.AllowNull {
			n = schema.Nullable(n)
		}
		return n, nil
	case rule.Nullable:
		return schema.Nullable(n), nil
	case rule.Default:
		return schema.Default(n, r.Value), nil
	case rule.Only:
		return schema.Only(n, r.Values...), nil
	case rule.Label:
		return schema.Label(n, r.Text), nil

	case rule.MinLength:
		switch n := n.(type) {
		case schema.StringNode:
			return n.Min(r.N), nil
		case schema.ArrayNode:
			return n.Min(r.N), nil
		}
	case rule.MaxLength:
		switch n := n.(type) {
		case schema.StringNode:
			return n.Max(r.N), nil
		case schema.ArrayNode:
			return n.Max(r.N), nil
		}
	case rule.Single:
		if n, ok := n.(schema.ArrayNode); ok {
			return n.Single(), nil
		}

	case rule.Min:
		switch n := n.(type) {
		case schema.NumberNode:
			return n.Min(r.Value), nil
		case schema.BigIntNode:
			if bound, ok := bigBound(r.Value); ok {
				return n.Min(bound), nil
			}
		}
	case rule.Max:
		switch n := n.(type) {
		case schema.NumberNode:
			return n.Max(r.Value), nil
		case schema.BigIntNode:
			if bound, ok := bigBound(r.Value); ok {
				return n.Max(bound), nil
			}
		}
	case rule.Integer:
		if n, ok := n.(schema.NumberNode); ok {
			return n.Integer(), nil
		}

	default:
		if s, ok := n.(schema.StringNode); ok {
			if out, ok := applyStringRule(s, r); ok {
				return out, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrRuleNotApplicable, r, n.Kind())
}

func applyStringRule(n schema.StringNode, r rule.Rule) (schema.Node, bool) {
	switch r := r.(type) {
	case rule.Pattern:
		return n.Pattern(regexp.MustCompile(r.Expr)), true
	case rule.Trim:
		return n.Trim(), true
	case rule.Email:
		return n.Email(), true
	case rule.URI:
		return n.URI(), true
	case rule.UUID:
		return n.UUID(), true
	case rule.Lowercase:
		return n.Lowercase(), true
	case rule.Uppercase:
		return n.Uppercase(), true
	}
	return nil, false
}

func bigBound(v float64) (*big.Int, bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
		return nil, false
	}
	bound, _ := big.NewFloat(v).Int(nil)
	return bound, true
}
