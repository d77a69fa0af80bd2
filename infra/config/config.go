package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Path is the default config directory, relative to the repository root.
const Path = "infra/config"

// Load loads the json config <dir>/<key>.json into v.
func Load(dir, key string, v interface{}) error {
	p := filepath.Join(dir, fmt.Sprintf("%s.json", key))
	b, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not load config for %s: %w", key, err)
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		return fmt.Errorf("could not unmarshal the config for %s: %w", key, err)
	}

	log.Info().Str("config", key).Str("path", p).Msg("loaded config")
	return nil
}

// MustLoad loads the config for the given key from the default directory.
func MustLoad(key string, v interface{}) {
	if err := Load(Path, key, v); err != nil {
		panic(err.Error())
	}
}
