package validation

import "github.com/gennovative/micro-fleet-common/pkg/schema"

// Option tunes a single validation call.
type Option func(*schema.Options)

// AbortEarly stops at the first failed constraint. Off by default.
func AbortEarly(abort bool) Option {
	return func(o *schema.Options) {
		o.AbortEarly = abort
	}
}

// AllowUnknown keeps properties that have no rules. On by default.
func AllowUnknown(allow bool) Option {
	return func(o *schema.Options) {
		o.AllowUnknown = allow
	}
}

// StripUnknown removes properties that have no rules. On by default and
// takes precedence over AllowUnknown.
func StripUnknown(strip bool) Option {
	return func(o *schema.Options) {
		o.StripUnknown = strip
	}
}

func resolveOptions(base schema.Options, layers ...[]Option) schema.Options {
	for _, layer := range layers {
		for _, opt := range layer {
			if opt != nil {
				opt(&base)
			}
		}
	}
	return base
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*validatorConfig)

type validatorConfig struct {
	options []Option
	compile []CompileOption
}

// WithOptions sets the validator's default validation options. Options passed
// to a call are applied on top of them.
func WithOptions(opts ...Option) ValidatorOption {
	return func(c *validatorConfig) {
		c.options = append(c.options, opts...)
	}
}

// WithCompileOptions passes opts to the registry when the validator compiles.
func WithCompileOptions(opts ...CompileOption) ValidatorOption {
	return func(c *validatorConfig) {
		c.compile = append(c.compile, opts...)
	}
}

// WithConfig applies options loaded from the environment.
func WithConfig(cfg Config) ValidatorOption {
	return func(c *validatorConfig) {
		c.options = append(c.options, cfg.Options()...)
		c.compile = append(c.compile, RequirePK(cfg.RequirePK))
	}
}
