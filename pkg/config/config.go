// Package config loads designpanel configuration from TOML or YAML files.
//
// Missing keys keep their defaults; unknown keys are rejected so typos do not
// pass silently. Flags given on the command line override file values after
// loading.
//
// Example panel.toml:
//
//	[panel]
//	width = 500
//	height = 500
//
//	[block]
//	label = "drag me!"
//	width = 80
//	height = 30
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
)

// Defaults.
const (
	DefaultPanelWidth  = 500
	DefaultPanelHeight = 500
	DefaultBlockWidth  = 80
	DefaultBlockHeight = 30
	DefaultAddr        = ":8080"
	DefaultLogLevel    = "info"
)

// Config is the full configuration.
type Config struct {
	Panel  Panel  `toml:"panel" yaml:"panel"`
	Block  Block  `toml:"block" yaml:"block"`
	Server Server `toml:"server" yaml:"server"`
	Log    Log    `toml:"log" yaml:"log"`
}

// Panel is the fixed-size container.
type Panel struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Block describes the draggable block. Width and Height are used by hosts
// that cannot measure a rendered element (replay, serve); the terminal host
// measures the rendered label instead.
type Block struct {
	Label  string `toml:"label" yaml:"label"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// Server configures the HTTP host.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Panel:  Panel{Width: DefaultPanelWidth, Height: DefaultPanelHeight},
		Block:  Block{Label: positioner.DefaultLabel, Width: DefaultBlockWidth, Height: DefaultBlockHeight},
		Server: Server{Addr: DefaultAddr},
		Log:    Log{Level: DefaultLogLevel},
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read decodes path on top of the defaults without validating, for hosts
// that fill in fields of their own before calling Validate.
func Read(path string) (*Config, error) {
	if err := derrors.ValidateDataPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := Decode(path, data, cfg); err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// LoadOptional is Load, except an empty path yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Decode unmarshals data into v according to the extension of path: TOML
// for .toml, YAML otherwise. Keys v has no field for are rejected.
func Decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"panel width", c.Panel.Width},
		{"panel height", c.Panel.Height},
		{"block width", c.Block.Width},
		{"block height", c.Block.Height},
	}
	for _, chk := range checks {
		if err := derrors.ValidateDimension(chk.name, chk.v); err != nil {
			return err
		}
	}
	if err := derrors.ValidateFits(c.Panel.Width, c.Panel.Height, c.Block.Width, c.Block.Height); err != nil {
		return err
	}
	if err := derrors.ValidateLabel(c.Block.Label); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return derrors.Wrap(derrors.ErrCodeInvalidConfig, err, "log level")
	}
	return nil
}

// PanelSize returns the panel as a positioner size.
func (c *Config) PanelSize() positioner.Size {
	return positioner.Size{Width: c.Panel.Width, Height: c.Panel.Height}
}

// BlockSize returns the fixed block size.
func (c *Config) BlockSize() positioner.Size {
	return positioner.Size{Width: c.Block.Width, Height: c.Block.Height}
}

// Positioner returns the positioner configuration.
func (c *Config) Positioner() positioner.Config {
	return positioner.Config{Panel: c.PanelSize(), Label: c.Block.Label}
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
