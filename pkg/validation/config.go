package validation

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds default validation options read from the environment.
type Config struct {
	AbortEarly   bool `env:"VALIDATION_ABORT_EARLY" envDefault:"false"`
	AllowUnknown bool `env:"VALIDATION_ALLOW_UNKNOWN" envDefault:"true"`
	StripUnknown bool `env:"VALIDATION_STRIP_UNKNOWN" envDefault:"true"`
	RequirePK    bool `env:"VALIDATION_REQUIRE_PK" envDefault:"false"`
}

// LoadConfig reads Config from the environment after loading the given env
// files. Without files a .env in the working directory is loaded if present.
// Variables already set in the environment are not overridden.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrLoadingConfig, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Options converts cfg into validation options.
func (c Config) Options() []Option {
	return []Option{
		AbortEarly(c.AbortEarly),
		AllowUnknown(c.AllowUnknown),
		StripUnknown(c.StripUnknown),
	}
}
