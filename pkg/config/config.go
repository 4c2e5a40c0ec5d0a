// Package config loads per-package configuration structs from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrNilPointer    = errors.New("config: nil pointer")
	ErrParsingConfig = errors.New("config: failed to parse")
)

var loadEnvOnce sync.Once

// Load parses environment variables into the given struct based on its
// `env` field tags. The default .env file is loaded once per process; a
// missing file is not an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadEnv loads the named .env files into the process environment without
// overriding variables that are already set.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}
