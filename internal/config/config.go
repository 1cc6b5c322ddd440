// Package config loads the interpreter's optional settings file: program
// buffer size and startup banner text. None of it is required to run the
// interpreter, since every field has a built-in default, but a TOML file
// lets an installation override them without touching flags.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DefaultBanner is printed before the first READY. prompt when no
// banner is configured.
const DefaultBanner = "MICROSOFT BASIC\n"

// Config holds the settings a TOML file may override. The zero value is
// not the compiled-in defaults; Defaults returns those.
type Config struct {
	ProgramSize int    `toml:"program_size"`
	Banner      string `toml:"banner"`
}

// Defaults returns the built-in settings, used whenever no config file
// is given or a file omits a field.
func Defaults() Config {
	return Config{
		ProgramSize: 1 << 20,
		Banner:      DefaultBanner,
	}
}

// Load reads and parses the TOML file at path, starting from Defaults
// and overriding only the fields the file sets.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrapf(err, "config: %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: decode %s", path)
	}
	return cfg, nil
}
