package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the dotenv file read by Load unless WithEnvFile overrides it.
const DefaultEnvFile = ".env"

// ErrInvalidSettings is returned when a setting cannot be coerced to its
// declared type or fails validation.
var ErrInvalidSettings = errors.New("invalid settings")

var validate = validator.New()

type loadOptions struct {
	envFile string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithEnvFile sets the dotenv file to read. An empty path disables the file.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// Load builds Settings from defaults, the optional dotenv file and the process
// environment, in increasing order of precedence. Environment variables that
// do not name a known setting are ignored.
func Load(opts ...Option) (*Settings, error) {
	o := loadOptions{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if o.envFile != "" {
		if err := readEnvFile(v, o.envFile); err != nil {
			return nil, err
		}
	}

	// Keys are looked up as their upper-cased names: app_name -> APP_NAME.
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("%w: validation failed: %v", ErrInvalidSettings, err)
	}

	return &s, nil
}

// readEnvFile merges KEY=value lines from path into v. A missing file is not an error.
func readEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat env file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return nil
}
