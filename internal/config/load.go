package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/coralpress/themebuild/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrConfigValidation) to distinguish the two.
var ErrConfigValidation = errors.New("config validation failed")

// envPrefixes restricts .env values to the namespaces the toolchain consumes.
var envPrefixes = []string{"THEMEBUILD_", "NODE_", "TAILWIND_"}

// Load reads and validates the config at path. A missing file yields the
// default configuration, since .themebuild.toml is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates config TOML data. source is used in error
// messages.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	if err := expandBinaries(&cfg.Binaries); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// expandBinaries resolves ~ in configured binary paths.
func expandBinaries(binaries *Binaries) error {
	for _, field := range []*string{&binaries.PackageManager, &binaries.Grunt, &binaries.Magento} {
		if *field == "" {
			continue
		}
		expanded, err := homedir.Expand(*field)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, *field, err)
		}
		*field = expanded
	}
	return nil
}

// LoadEnv reads the optional project .env into toolchain environment
// additions. Only namespaced keys are passed through to external processes.
func LoadEnv(path string) ([]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}

	extra := make([]string, 0, len(env))
	for key, value := range env {
		if !allowedEnvKey(key) {
			continue
		}
		extra = append(extra, key+"="+value)
	}
	return extra, nil
}

func allowedEnvKey(key string) bool {
	for _, prefix := range envPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
