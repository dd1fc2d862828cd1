package config

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Environment variables that override the config file.
const (
	EnvBlueprintFolder = "WHAMDUP_BLUEPRINT_FOLDER"
	EnvForce           = "WHAMDUP_FORCE"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// 🌱 LoadDotEnv loads variables from path into the process environment without
// replacing ones already set. A missing file is not an error.
func LoadDotEnv(ctx context.Context, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Errorf("loading %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loaded environment file")
	return nil
}

// ApplyEnv overrides cfg with the WHAMDUP_* variables found through lookup.
func (cfg *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvBlueprintFolder); ok && v != "" {
		cfg.BlueprintFolder = v
	}
	if v, ok := lookup(EnvForce); ok && v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf("parsing %s: %w", EnvForce, err)
		}
		cfg.Force = force
	}
	return nil
}
