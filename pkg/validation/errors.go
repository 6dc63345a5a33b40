package validation

import "errors"

// Declaration errors
var (
	// ErrMissingPropertyName is raised when a property decorator has no name
	ErrMissingPropertyName = errors.New("validation: property name is required")

	// ErrEmptyOverride is raised when a class override carries no schema at all
	ErrEmptyOverride = errors.New("validation: class override has no schema")

	// ErrRawSchemaNotObject is raised when a class override's raw schema cannot produce an object
	ErrRawSchemaNotObject = errors.New("validation: raw class schema must be an object")

	// ErrRuleNotApplicable is raised when a rule does not fit its property's type
	ErrRuleNotApplicable = errors.New("validation: rule does not apply to the property type")

	// ErrInvalidPattern is raised when a pattern rule holds a regular expression that does not compile
	ErrInvalidPattern = errors.New("validation: invalid pattern")
)

// Compilation and use errors
var (
	// ErrNoValidator is returned when a class has no validation metadata to compile
	ErrNoValidator = errors.New("validation: no validation rules declared")

	// ErrNotCompiled is raised when a validator is used before Compile succeeded
	ErrNotCompiled = errors.New("validation: validator must be compiled before use")

	// ErrNoPrimaryKey is raised by ID when the model declares no key property
	ErrNoPrimaryKey = errors.New("validation: model declares no primary key")

	// ErrConvertingInput is reported when a struct input cannot be turned into an object
	ErrConvertingInput = errors.New("validation: input cannot be converted")
)

// Struct tag and definition file errors
var (
	// ErrInvalidTag is raised when a validate struct tag cannot be parsed
	ErrInvalidTag = errors.New("validation: invalid struct tag")

	// ErrInvalidDefinition is returned when a YAML definition is malformed
	ErrInvalidDefinition = errors.New("validation: invalid definition")

	// ErrNotAStruct is raised when FromStruct is given a non-struct type
	ErrNotAStruct = errors.New("validation: type is not a struct")
)

// Configuration errors
var (
	// ErrLoadingConfig is returned when env files cannot be loaded
	ErrLoadingConfig = errors.New("validation: failed to load env files")

	// ErrParsingConfig is returned when environment variables cannot be parsed into the config
	ErrParsingConfig = errors.New("validation: failed to parse env")
)
