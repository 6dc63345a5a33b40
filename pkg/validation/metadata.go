package validation

import (
	"maps"
	"slices"

	"github.com/gennovative/micro-fleet-common/pkg/schema"
	"github.com/gennovative/micro-fleet-common/pkg/validation/rule"
)

// PropertySchema is how a property's schema is obtained: either RawSchema,
// used as is, or DerivedSchema built from a type initializer and rules.
type PropertySchema interface {
	propertySchema()
}

// RawSchema is a caller supplied schema node.
type RawSchema struct {
	Node schema.Node
}

// DerivedSchema folds Rules, in order, over the node of Type. A nil Type starts
// from schema.Any.
type DerivedSchema struct {
	Type  rule.Type
	Rules []rule.Rule
}

func (RawSchema) propertySchema()     {}
func (DerivedSchema) propertySchema() {}

// PropertyMetadata holds everything declared for one property.
type PropertyMetadata struct {
	Type  rule.Type
	Rules []rule.Rule
	Raw   schema.Node

	inits int
}

// Schema reports how the property's schema is obtained. A raw node always
// wins over declared rules.
func (p *PropertyMetadata) Schema() PropertySchema {
	if p.Raw != nil {
		return RawSchema{Node: p.Raw}
	}
	return DerivedSchema{Type: p.Type, Rules: slices.Clone(p.Rules)}
}

// SetType records the type initializer. The last call wins.
func (p *PropertyMetadata) SetType(t rule.Type) {
	p.Type = t
	p.inits++
}

// AddRule appends a rule transform.
func (p *PropertyMetadata) AddRule(r rule.Rule) {
	p.Rules = append(p.Rules, r)
}

// ClassOverride replaces the schemas derived from property metadata.
type ClassOverride struct {
	// SchemaMapModel maps non-key property names to their nodes.
	SchemaMapModel map[string]schema.Node
	// SchemaMapPK maps primary key names to their nodes.
	SchemaMapPK map[string]schema.Node
	// RawSchema, when set, is the whole schema used as is.
	RawSchema schema.Node
	// CompositePK forces (or prevents) the composite key shape.
	CompositePK *bool
	// RequirePK makes key properties mandatory in the whole schema.
	RequirePK bool
	// Options are the default validation options of the compiled model.
	Options []Option
}

func (o *ClassOverride) empty() bool {
	return o == nil || (len(o.SchemaMapModel) == 0 && len(o.SchemaMapPK) == 0 && o.RawSchema == nil)
}

// ClassMetadata is the validation metadata of one class.
type ClassMetadata struct {
	Properties  map[string]*PropertyMetadata
	PrimaryKeys []string
	Override    *ClassOverride

	order []string
}

func newClassMetadata() *ClassMetadata {
	return &ClassMetadata{Properties: make(map[string]*PropertyMetadata)}
}

// Property returns the metadata of name, creating it on first use.
func (m *ClassMetadata) Property(name string) *PropertyMetadata {
	p, ok := m.Properties[name]
	if !ok {
		p = &PropertyMetadata{}
		m.Properties[name] = p
		m.touch(name)
	}
	return p
}

// MarkPrimaryKey adds name to the primary key set. Marking twice is a no-op.
func (m *ClassMetadata) MarkPrimaryKey(name string) {
	m.touch(name)
	if !slices.Contains(m.PrimaryKeys, name) {
		m.PrimaryKeys = append(m.PrimaryKeys, name)
	}
}

// IsPrimaryKey reports whether name is part of the primary key.
func (m *ClassMetadata) IsPrimaryKey(name string) bool {
	return slices.Contains(m.PrimaryKeys, name)
}

// Names returns every declared property, keys included, in declaration order.
func (m *ClassMetadata) Names() []string {
	return slices.Clone(m.order)
}

// IsEmpty reports whether nothing was declared.
func (m *ClassMetadata) IsEmpty() bool {
	return len(m.order) == 0 && m.Override.empty()
}

func (m *ClassMetadata) touch(name string) {
	if !slices.Contains(m.order, name) {
		m.order = append(m.order, name)
	}
}

func (m *ClassMetadata) typeInits(name string) int {
	if p, ok := m.Properties[name]; ok {
		return p.inits
	}
	return 0
}

func (m *ClassMetadata) clone() *ClassMetadata {
	c := &ClassMetadata{
		Properties:  make(map[string]*PropertyMetadata, len(m.Properties)),
		PrimaryKeys: slices.Clone(m.PrimaryKeys),
		order:       slices.Clone(m.order),
	}
	for name, p := range m.Properties {
		cp := *p
		cp.Rules = slices.Clone(p.Rules)
		c.Properties[name] = &cp
	}
	if m.Override != nil {
		o := *m.Override
		o.SchemaMapModel = maps.Clone(o.SchemaMapModel)
		o.SchemaMapPK = maps.Clone(o.SchemaMapPK)
		o.Options = slices.Clone(o.Options)
		c.Override = &o
	}
	// Properties added through the exported map keep a stable order too.
	for _, name := range slices.Sorted(maps.Keys(m.Properties)) {
		if !slices.Contains(c.order, name) {
			c.order = append(c.order, name)
		}
	}
	return c
}
