package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumberNode validates numbers. Output is always float64.
type NumberNode struct {
	flags         Flags
	convert       bool
	min, max      float64
	hasMin        bool
	hasMax        bool
	integer       bool
	allowInfinity bool
}

// Number returns a number node that converts numeric strings.
func Number() NumberNode {
	return NumberNode{convert: true}
}

func (n NumberNode) Kind() Kind   { return KindNumber }
func (n NumberNode) Flags() Flags { return n.flags }

func (n NumberNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

// Convert toggles parsing of numeric strings.
func (n NumberNode) Convert(convert bool) NumberNode {
	n.convert = convert
	return n
}

func (n NumberNode) Min(limit float64) NumberNode {
	n.min, n.hasMin = limit, true
	return n
}

func (n NumberNode) Max(limit float64) NumberNode {
	n.max, n.hasMax = limit, true
	return n
}

func (n NumberNode) Integer() NumberNode {
	n.integer = true
	return n
}

func (n NumberNode) AllowInfinity() NumberNode {
	n.allowInfinity = true
	return n
}

func (n NumberNode) check(value any, st *state) any {
	f, ok := n.parse(value)
	if !ok || math.IsNaN(f) {
		st.fail(n.flags, "number.base", value, nil, "must be a number")
		return value
	}
	if math.IsInf(f, 0) && !n.allowInfinity {
		st.fail(n.flags, "number.infinity", value, nil, "cannot be infinity")
		return value
	}

	if n.integer && f != math.Trunc(f) {
		st.fail(n.flags, "number.integer", value, nil, "must be an integer")
	}
	if n.hasMin && f < n.min {
		st.fail(n.flags, "number.min", value, map[string]any{"limit": n.min},
			"must be greater than or equal to %v", n.min)
	}
	if n.hasMax && f > n.max {
		st.fail(n.flags, "number.max", value, map[string]any{"limit": n.max},
			"must be less than or equal to %v", n.max)
	}
	return f
}

func (n NumberNode) parse(value any) (float64, bool) {
	if f, ok := toFloat(value); ok {
		return f, true
	}
	var raw string
	switch v := value.(type) {
	case json.Number:
		raw = string(v)
	case string:
		if !n.convert {
			return 0, false
		}
		raw = strings.TrimSpace(v)
	default:
		return 0, false
	}
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
