// Package exceptions provides the error taxonomy shared by micro-fleet services.
//
// Three severities are distinguished:
//
//   - CriticalException – unrecoverable failures, usually programmer mistakes
//     such as misconfigured models or API misuse. Guards panic with these.
//   - MinorException – recoverable failures the caller is expected to handle.
//   - ValidationError – a MinorException carrying a list of field-level items
//     produced by model validation.
//
// All types implement the error interface and cooperate with errors.Is and
// errors.As. A wrapped cause is reachable through Unwrap:
//
//	err := exceptions.NewCritical(validation.ErrNotCompiled)
//	errors.Is(err, validation.ErrNotCompiled) // true
//
// # Validation errors
//
// ValidationError keeps items in the order the validator produced them. Each
// item carries a human-readable message, the path of property names leading
// to the offending field (empty for whole-object problems) and the raw value:
//
//	if verr, ok := exceptions.AsValidationError(err); ok {
//	    for _, item := range verr.Items() {
//	        fmt.Println(item.Field(), item.Message)
//	    }
//	}
package exceptions
