// Package schema is the validation engine behind micro-fleet models.
//
// A schema is a tree of immutable Node values. Builders return copies, so a
// node can be refined freely and shared between goroutines once built:
//
//	name := schema.String().Min(3).Max(10).Pattern(regexp.MustCompile(`^[\w -]+$`))
//	user := schema.Object().
//	    Key("name", schema.Required(name)).
//	    Key("age", schema.Number().Min(15).Max(99))
//
//	value, err := schema.Validate(schema.Required(user), input, schema.DefaultOptions())
//
// Validate never panics on bad data. It returns the cleaned value (converted,
// trimmed, defaults applied, unknown keys handled per Options) or an Errors
// value listing every failed constraint with a stable code, a message, the
// path to the field and the offending value.
//
// # Node kinds
//
//   - String     – empty allowed unless AllowEmpty(false); length, pattern,
//     trim, case conversion, email, uri and uuid checks
//   - Number     – converts numeric strings by default; bounds, integer
//   - Boolean    – converts "true"/"false" by default
//   - BigInt     – digit strings or integral numbers; kept as string unless
//     Convert(true) yields *big.Int
//   - DateString – ISO 8601 strings in UTC or zoned form, calendar-checked
//   - Array      – item schema, length bounds, single value wrapping
//   - Object     – ordered keys, unknown key policy from Options
//   - Any        – accepts everything; useful with Only and Default
//   - OpenAPI    – delegates to a kin-openapi schema
//
// Flags shared by all kinds are set with the package level transforms
// Required, Optional, Nullable, Default, WithoutDefault, Only and Label.
//
// ToOpenAPI renders any node as an OpenAPI 3 schema for documentation.
package schema
