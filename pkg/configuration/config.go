package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alantheprice/cmdline/pkg/console"
)

const (
	ConfigDirName  = ".cmdline"
	ConfigFileName = "config.toml"

	// DefaultPrompt is shown when no prompt is configured
	DefaultPrompt = "rusty_cmd $ "

	// PromptEnvVar overrides the configured prompt
	PromptEnvVar = "CMDLINE_PROMPT"
)

// Config is the session configuration read from config.toml.
type Config struct {
	Prompt  string `toml:"prompt"`
	LogFile string `toml:"log_file"`

	// Quiet period that ends a burst of resize events
	ResizeWindowMs int `toml:"resize_window_ms"`
	// How long to wait for the keyboard capability reply
	ProbeTimeoutMs int `toml:"probe_timeout_ms"`

	KeyboardEnhancement bool `toml:"keyboard_enhancement"`
	MouseCapture        bool `toml:"mouse_capture"`
	FocusReporting      bool `toml:"focus_reporting"`

	// Color enables styled output when the terminal supports it
	Color bool `toml:"color"`

	// Watch reloads the file when it changes on disk
	Watch bool `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt:              DefaultPrompt,
		ResizeWindowMs:      int(console.DefaultResizeWindow / time.Millisecond),
		ProbeTimeoutMs:      int(console.DefaultFeatures().ProbeTimeout / time.Millisecond),
		KeyboardEnhancement: true,
		MouseCapture:        true,
		FocusReporting:      true,
		Color:               true,
	}
}

// GetConfigDir returns ~/.cmdline.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// DefaultPath returns the path of config.toml in the config directory.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the configuration at path. A missing file yields the
// defaults. Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies environment variables on top of the file.
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv(PromptEnvVar); prompt != "" {
		c.Prompt = prompt
	}
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every invalid field.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for values the session cannot use.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Prompt == "" {
		errs = append(errs, ValidationError{Field: "prompt", Message: "cannot be empty"})
	}
	if c.ResizeWindowMs < 0 {
		errs = append(errs, ValidationError{Field: "resize_window_ms", Message: "cannot be negative"})
	}
	if c.ProbeTimeoutMs < 0 {
		errs = append(errs, ValidationError{Field: "probe_timeout_ms", Message: "cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResizeWindow returns the resize coalescing window.
func (c *Config) ResizeWindow() time.Duration {
	return time.Duration(c.ResizeWindowMs) * time.Millisecond
}

// Features returns the terminal reporting modes to enable.
func (c *Config) Features() console.Features {
	features := console.DefaultFeatures()
	features.KeyboardEnhancement = c.KeyboardEnhancement
	features.MouseCapture = c.MouseCapture
	features.FocusReporting = c.FocusReporting
	features.ProbeTimeout = time.Duration(c.ProbeTimeoutMs) * time.Millisecond
	return features
}
