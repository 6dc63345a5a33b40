package schema

import (
	"reflect"
	"slices"
	"sort"
)

// ObjectNode validates maps with string keys. Keys are checked in the order
// they were added so errors are reported deterministically.
type ObjectNode struct {
	flags    Flags
	keys     []string
	children map[string]Node
}

func Object() ObjectNode {
	return ObjectNode{}
}

func (n ObjectNode) Kind() Kind   { return KindObject }
func (n ObjectNode) Flags() Flags { return n.flags }

func (n ObjectNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

// Key adds or replaces the schema of one key.
func (n ObjectNode) Key(name string, child Node) ObjectNode {
	children := make(map[string]Node, len(n.children)+1)
	for k, v := range n.children {
		children[k] = v
	}
	if _, exists := children[name]; !exists {
		n.keys = append(slices.Clone(n.keys), name)
	}
	children[name] = child
	n.children = children
	return n
}

// Keys lists declared keys in declaration order.
func (n ObjectNode) Keys() []string {
	return slices.Clone(n.keys)
}

// Child returns the schema of one key.
func (n ObjectNode) Child(name string) (Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// Len is the number of declared keys.
func (n ObjectNode) Len() int {
	return len(n.keys)
}

// MapChildren returns a copy with fn applied to every child.
func (n ObjectNode) MapChildren(fn func(key string, child Node) Node) ObjectNode {
	out := ObjectNode{flags: n.flags}
	for _, key := range n.keys {
		out = out.Key(key, fn(key, n.children[key]))
	}
	return out
}

func (n ObjectNode) check(value any, st *state) any {
	in, ok := toMap(value)
	if !ok {
		st.fail(n.flags, "object.base", value, nil, "must be of type object")
		return value
	}

	out := make(map[string]any, len(n.keys))
	for _, key := range n.keys {
		if st.halted() {
			return out
		}
		v, present := in[key]
		if res, keep := run(n.children[key], v, present, st.at(key)); keep {
			out[key] = res
		}
	}

	unknown := make([]string, 0)
	for key := range in {
		if _, declared := n.children[key]; !declared {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		switch {
		case st.opts.StripUnknown:
		case st.opts.AllowUnknown:
			out[key] = in[key]
		default:
			child := st.at(key)
			child.fail(Flags{}, "object.unknown", in[key], map[string]any{"key": key}, "is not allowed")
		}
	}
	return out
}

func toMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
