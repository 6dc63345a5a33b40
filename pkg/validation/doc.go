// Package validation turns declarative, per-property rules attached to a
// model type into compiled schemas, and validates untrusted input against
// them.
//
// Rules are recorded in a Registry while a model is being declared, either
// with decorators, struct tags or YAML definitions:
//
//	type User struct {
//		ID      string `json:"id"`
//		Name    string `json:"name"`
//		Address string `json:"address"`
//		Age     int    `json:"age"`
//	}
//
//	validation.Define(validation.DefaultRegistry, validation.ClassOf[User](),
//		validation.Prop("id", validation.ID()),
//		validation.Prop("name", validation.String(), validation.MinLength(3),
//			validation.MaxLength(10), validation.Pattern(`^[\w -]+$`), validation.Required()),
//		validation.Prop("address", validation.String(validation.AllowEmpty(false)), validation.Required()),
//		validation.Prop("age", validation.Number(), validation.Min(15), validation.Max(99)),
//	)
//
// A Validator compiles the recorded rules once into a whole schema (all rules
// apply), a partial schema (every property optional, for patch updates) and a
// primary-key schema. After compilation the metadata is dropped and the
// schemas are immutable, so one Validator can be shared between goroutines:
//
//	v := validation.MustCompile[User](validation.DefaultRegistry)
//	user, err := v.Whole(input)
//	patch, err := v.Partial(input)
//	id, err := v.ID("42")
//
// Data errors are returned as *exceptions.ValidationError. Misuse, such as an
// empty property name or validating before Compile, panics with an
// *exceptions.CriticalException wrapping one of the sentinel errors below.
package validation
