package schema

import (
	"reflect"
	"strconv"
)

// ArrayNode validates slices.
type ArrayNode struct {
	flags    Flags
	items    Node
	min, max int
	hasMin   bool
	hasMax   bool
	single   bool
}

// Array returns an array node. A nil items node accepts any element.
func Array(items Node) ArrayNode {
	return ArrayNode{items: items}
}

func (n ArrayNode) Kind() Kind   { return KindArray }
func (n ArrayNode) Flags() Flags { return n.flags }

func (n ArrayNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

// Items returns the element schema, possibly nil.
func (n ArrayNode) Items() Node {
	return n.items
}

func (n ArrayNode) Min(length int) ArrayNode {
	n.min, n.hasMin = length, true
	return n
}

func (n ArrayNode) Max(length int) ArrayNode {
	n.max, n.hasMax = length, true
	return n
}

// Single wraps a non-array value into a one element array.
func (n ArrayNode) Single() ArrayNode {
	n.single = true
	return n
}

func (n ArrayNode) check(value any, st *state) any {
	elems, ok := toSlice(value)
	if !ok {
		if !n.single || value == nil {
			st.fail(n.flags, "array.base", value, nil, "must be an array")
			return value
		}
		elems = []any{value}
	}

	out := make([]any, 0, len(elems))
	for i, elem := range elems {
		if st.halted() {
			break
		}
		if n.items == nil {
			out = append(out, elem)
			continue
		}
		res, _ := run(n.items, elem, true, st.at(strconv.Itoa(i)))
		out = append(out, res)
	}

	if n.hasMin && len(elems) < n.min {
		st.fail(n.flags, "array.min", value, map[string]any{"limit": n.min},
			"must contain at least %d items", n.min)
	}
	if n.hasMax && len(elems) > n.max {
		st.fail(n.flags, "array.max", value, map[string]any{"limit": n.max},
			"must contain less than or equal to %d items", n.max)
	}
	return out
}

func toSlice(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}
