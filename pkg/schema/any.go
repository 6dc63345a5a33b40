package schema

// AnyNode accepts every value. Combine it with Only, Default or Required.
type AnyNode struct {
	flags Flags
}

func Any() AnyNode {
	return AnyNode{}
}

func (n AnyNode) Kind() Kind   { return KindAny }
func (n AnyNode) Flags() Flags { return n.flags }

func (n AnyNode) withFlags(f Flags) Node {
	n.flags = f
	return n
}

func (n AnyNode) check(value any, _ *state) any {
	return value
}
