package validation

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/gennovative/micro-fleet-common/pkg/schema"
	"github.com/gennovative/micro-fleet-common/pkg/validation/rule"
)

// LoadYAML declares the properties of class described by a YAML definition:
//
//	properties:
//	  id:
//	    type: bigint
//	    primaryKey: true
//	  name:
//	    type: string
//	    allowEmpty: false
//	    rules:
//	      - minLength: 3
//	      - pattern: '^[\w -]+$'
//	      - required: true
//	  tags:
//	    type: array
//	    items: {type: string, rules: [{maxLength: 5}]}
//	    rules: [single]
//
// Properties keep the order they are written in. Nothing is declared when
// the definition is invalid.
func LoadYAML(reg *Registry, class Class, data []byte) error {
	var def struct {
		Properties yaml.Node `yaml:"properties"`
	}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if def.Properties.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: properties must be a mapping", ErrInvalidDefinition)
	}

	content := def.Properties.Content
	props := make([]Property, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value

		var pd propertyDef
		if err := content[i+1].Decode(&pd); err != nil {
			return fmt.Errorf("%w: property %q: %w", ErrInvalidDefinition, name, err)
		}
		decorators, err := pd.decorators()
		if err != nil {
			return fmt.Errorf("%w: property %q: %w", ErrInvalidDefinition, name, err)
		}
		props = append(props, Prop(name, decorators...))
	}

	Define(reg, class, props...)
	return nil
}

// LoadYAMLFile is LoadYAML over the content of path.
func LoadYAMLFile(reg *Registry, class Class, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return LoadYAML(reg, class, data)
}

type propertyDef struct {
	Type       string       `yaml:"type"`
	AllowEmpty *bool        `yaml:"allowEmpty"`
	Convert    *bool        `yaml:"convert"`
	UTC        bool         `yaml:"utc"`
	PrimaryKey bool         `yaml:"primaryKey"`
	Items      *propertyDef `yaml:"items"`
	Rules      []ruleDef    `yaml:"rules"`
}

func (pd *propertyDef) typeOptions() []TypeOption {
	var opts []TypeOption
	if pd.AllowEmpty != nil {
		opts = append(opts, AllowEmpty(*pd.AllowEmpty))
	}
	if pd.Convert != nil {
		opts = append(opts, Convert(*pd.Convert))
	}
	if pd.UTC {
		opts = append(opts, UTC())
	}
	return opts
}

func (pd *propertyDef) ruleList() []rule.Rule {
	rules := make([]rule.Rule, 0, len(pd.Rules))
	for _, r := range pd.Rules {
		if r.rule != nil {
			rules = append(rules, r.rule)
		}
	}
	return rules
}

func (pd *propertyDef) initializer() (rule.Type, error) {
	switch pd.Type {
	case "", "any":
		return nil, nil
	case "array":
		var items schema.Node
		if pd.Items != nil {
			node, err := pd.Items.node()
			if err != nil {
				return nil, fmt.Errorf("items: %w", err)
			}
			items = node
		}
		return rule.ArrayType{Items: items}, nil
	}
	if t := typeFor(pd.Type, pd.typeOptions()); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", pd.Type)
}

// node compiles the definition on its own, as used for array items.
func (pd *propertyDef) node() (schema.Node, error) {
	t, err := pd.initializer()
	if err != nil {
		return nil, err
	}
	return fold(t, pd.ruleList())
}

func (pd *propertyDef) decorators() ([]PropertyDecorator, error) {
	t, err := pd.initializer()
	if err != nil {
		return nil, err
	}
	rules := pd.ruleList()

	fallback := t
	if fallback == nil && pd.PrimaryKey {
		fallback = rule.BigIntType{}
	}
	if _, err := fold(fallback, rules); err != nil {
		return nil, err
	}

	var decorators []PropertyDecorator
	if t != nil {
		decorators = append(decorators, Type(t))
	}
	if pd.PrimaryKey {
		decorators = append(decorators, ID())
	}
	if len(rules) > 0 {
		decorators = append(decorators, Rules(rules...))
	}
	return decorators, nil
}

// ruleDef is one entry of a rules list: either a single key mapping such
// as {minLength: 3}, or a bare flag name such as trim.
type ruleDef struct {
	rule rule.Rule
}

func (r *ruleDef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return r.decode(value.Value, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: a rule must have exactly one key", value.Line)
		}
		return r.decode(value.Content[0].Value, value.Content[1])
	}
	return fmt.Errorf("line %d: a rule must be a name or a single key mapping", value.Line)
}

func (r *ruleDef) decode(name string, v *yaml.Node) error {
	switch name {
	case "minLength", "maxLength":
		var n int
		if err := v.Decode(&n); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "minLength" {
			r.rule = rule.MinLength{N: n}
		} else {
			r.rule = rule.MaxLength{N: n}
		}
	case "min", "max":
		var f float64
		if err := v.Decode(&f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "min" {
			r.rule = rule.Min{Value: f}
		} else {
			r.rule = rule.Max{Value: f}
		}
	case "pattern":
		var expr string
		if err := v.Decode(&expr); err != nil {
			return fmt.Errorf("pattern: %w", err)
		}
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		r.rule = rule.Pattern{Expr: expr}
	case "only":
		var values []any
		if err := v.Decode(&values); err != nil {
			return fmt.Errorf("only: %w", err)
		}
		r.rule = rule.Only{Values: values}
	case "default":
		var value any
		if err := v.Decode(&value); err != nil {
			return fmt.Errorf("default: %w", err)
		}
		r.rule = rule.Default{Value: value}
	case "label":
		var text string
		if err := v.Decode(&text); err != nil {
			return fmt.Errorf("label: %w", err)
		}
		r.rule = rule.Label{Text: text}
	default:
		flag, ok := flagRules[name]
		if !ok {
			return fmt.Errorf("unknown rule %q", name)
		}
		var on bool
		if err := v.Decode(&on); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if on {
			r.rule = flag
		}
	}
	return nil
}

var flagRules = map[string]rule.Rule{
	"required":         rule.Required{},
	"requiredNullable": rule.Required{AllowNull: true},
	"nullable":         rule.Nullable{},
	"trim":             rule.Trim{},
	"email":            rule.Email{},
	"uri":              rule.URI{},
	"uuid":             rule.UUID{},
	"lowercase":        rule.Lowercase{},
	"uppercase":        rule.Uppercase{},
	"integer":          rule.Integer{},
	"single":           rule.Single{},
}
