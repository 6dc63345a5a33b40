// Package guard provides fail-fast assertions for programmer errors.
//
// Guards panic instead of returning errors: they protect invariants that only
// a bug can break, such as a model annotated without a property name or a
// validator used before its schema was compiled. The panic value is always an
// error from the exceptions package so a recovering caller can still inspect
// it with errors.Is:
//
//	guard.NotEmpty("property", property)
//	guard.Assert(v.compiled(), validation.ErrNotCompiled)
package guard
