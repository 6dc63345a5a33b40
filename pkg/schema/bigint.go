package schema

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"regexp"
)

var bigIntPattern = regexp.MustCompile(`^[+-]?\d+$`)

// BigIntNode validates integers of arbitrary size, given as digit strings or
// integral numbers.
type BigIntNode struct {
	flags    Flags
	convert  bool
	min, max *big.Int
}

// BigInt returns a node that keeps valid values as decimal strings.
func BigInt() BigIntNode {
	return BigIntNode{}
}

func (n BigIntNode) Kind() Kind   { return KindBigInt }
func (n BigIntNode) Flags() Flags { return n.flags }

func (n BigIntNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

// Convert makes the node output *big.Int instead of a decimal string.
func (n BigIntNode) Convert(convert bool) BigIntNode {
	n.convert = convert
	return n
}

func (n BigIntNode) Min(limit *big.Int) BigIntNode {
	n.min = new(big.Int).Set(limit)
	return n
}

func (n BigIntNode) Max(limit *big.Int) BigIntNode {
	n.max = new(big.Int).Set(limit)
	return n
}

func (n BigIntNode) check(value any, st *state) any {
	i, text, ok := parseBigInt(value)
	if !ok {
		st.fail(n.flags, "bigint.base", value, nil, "must be a valid big integer")
		return value
	}

	if n.min != nil && i.Cmp(n.min) < 0 {
		st.fail(n.flags, "bigint.min", value, map[string]any{"limit": n.min.String()},
			"must be greater than or equal to %s", n.min.String())
	}
	if n.max != nil && i.Cmp(n.max) > 0 {
		st.fail(n.flags, "bigint.max", value, map[string]any{"limit": n.max.String()},
			"must be less than or equal to %s", n.max.String())
	}

	if n.convert {
		return i
	}
	return text
}

// parseBigInt returns the integer and its textual form. Strings keep their
// original spelling.
func parseBigInt(value any) (*big.Int, string, bool) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, "", false
		}
		return new(big.Int).Set(v), v.String(), true
	case string:
		return parseBigIntString(v)
	case json.Number:
		return parseBigIntString(string(v))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := big.NewInt(rv.Int())
		return i, i.String(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i := new(big.Int).SetUint64(rv.Uint())
		return i, i.String(), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return nil, "", false
		}
		i, _ := big.NewFloat(f).Int(nil)
		return i, i.String(), true
	}
	return nil, "", false
}

func parseBigIntString(s string) (*big.Int, string, bool) {
	if !bigIntPattern.MatchString(s) {
		return nil, "", false
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, "", false
	}
	return i, s, true
}
