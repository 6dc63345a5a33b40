package schema

import "strings"

// BooleanNode validates booleans.
type BooleanNode struct {
	flags   Flags
	convert bool
}

// Boolean returns a boolean node that converts "true" and "false" strings.
func Boolean() BooleanNode {
	return BooleanNode{convert: true}
}

func (n BooleanNode) Kind() Kind   { return KindBoolean }
func (n BooleanNode) Flags() Flags { return n.flags }

func (n BooleanNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

func (n BooleanNode) Convert(convert bool) BooleanNode {
	n.convert = convert
	return n
}

func (n BooleanNode) check(value any, st *state) any {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if n.convert {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return true
			case "false":
				return false
			}
		}
	}
	st.fail(n.flags, "boolean.base", value, nil, "must be a boolean")
	return value
}
