// Package rule defines the declarative vocabulary of model validation: type
// initializers (the primitive kind of a property) and rule transforms (the
// constraints refining it).
//
// Both are plain values. They carry no behavior besides String, which makes
// a property's accumulated rules easy to log, compare in tests and
// serialize. The validation package interprets them when it compiles a
// model's schema.
package rule
