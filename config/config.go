// Package config handles golox.toml interpreter configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Find.
const FileName = "golox.toml"

// Config represents a golox.toml configuration.
type Config struct {
	VM    VMConfig    `toml:"vm"`
	Debug DebugConfig `toml:"debug"`
	Log   LogConfig   `toml:"log"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-"`
}

// VMConfig bounds execution.
type VMConfig struct {
	StackLimit       int `toml:"stack_limit"`
	InstructionLimit int `toml:"instruction_limit"`
}

// DebugConfig toggles interpreter diagnostics.
type DebugConfig struct {
	Trace     bool `toml:"trace"`
	PrintCode bool `toml:"print_code"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		VM: VMConfig{StackLimit: 256},
	}
}

// Load parses the file at path. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &c, nil
}

// Find walks up from startDir looking for golox.toml and loads the first
// one found. It returns nil when there is none.
func Find(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate rejects limits that cannot be applied.
func (c Config) Validate() error {
	if c.VM.StackLimit < 0 {
		return fmt.Errorf("vm.stack_limit must not be negative, got %d", c.VM.StackLimit)
	}
	if c.VM.InstructionLimit < 0 {
		return fmt.Errorf("vm.instruction_limit must not be negative, got %d", c.VM.InstructionLimit)
	}
	return nil
}

// LogPath returns the log file for commonlog.Configure, or nil for stderr.
func (c Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	return &path
}
