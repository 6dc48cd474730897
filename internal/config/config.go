package config

import (
	"fmt"
	"slices"
)

// Config holds all blockfmt settings.
type Config struct {
	Heading HeadingConfig `toml:"heading"`
	Log     LogConfig     `toml:"log"`
}

// HeadingConfig configures the block formats offered by the heading command.
type HeadingConfig struct {
	// Default is the model name of the default format.
	Default string `toml:"default"`

	// Options lists the formats in presentation order.
	Options []FormatOption `toml:"options"`
}

// FormatOption describes one block format.
type FormatOption struct {
	// Model is the model element name, e.g. "heading1".
	Model string `toml:"model"`

	// View is the HTML tag the element renders as, e.g. "h2".
	View string `toml:"view"`

	// Title is the human-readable label. Derived from Model when empty.
	Title string `toml:"title"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// DefaultFormatID is the model name of the built-in default format.
const DefaultFormatID = "paragraph"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Heading: HeadingConfig{
			Default: DefaultFormatID,
			Options: []FormatOption{
				{Model: "paragraph", View: "p", Title: "Paragraph"},
				{Model: "heading1", View: "h2", Title: "Heading 1"},
				{Model: "heading2", View: "h3", Title: "Heading 2"},
				{Model: "heading3", View: "h4", Title: "Heading 3"},
			},
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Heading.Options = slices.Clone(c.Heading.Options)
	return &out
}

// Option returns the heading option with the given model name.
func (c *Config) Option(model string) (FormatOption, bool) {
	for _, opt := range c.Heading.Options {
		if opt.Model == model {
			return opt, true
		}
	}
	return FormatOption{}, false
}

// Validate checks the heading options. The default id is not required to be
// listed; consumers fall back to the first option.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Heading.Options))
	for i, opt := range c.Heading.Options {
		if opt.Model == "" || opt.View == "" {
			return fmt.Errorf("%w: option %d needs model and view", ErrInvalidFormatOption, i)
		}
		if seen[opt.Model] {
			return fmt.Errorf("%w: %s", ErrDuplicateFormatOption, opt.Model)
		}
		seen[opt.Model] = true
	}
	return nil
}
