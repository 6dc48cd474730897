package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix of all environment overrides.
const EnvPrefix = "BLOCKFMT_"

// envOverrides lists the settings that can be set from the environment.
type envOverrides struct {
	HeadingDefault string `env:"HEADING_DEFAULT"`
	LogLevel       string `env:"LOG_LEVEL"`
	LogFormat      string `env:"LOG_FORMAT"`
	LogFile        string `env:"LOG_FILE"`
}

// Loader reads configuration from a file and the environment.
type Loader struct {
	// Environment replaces the process environment when non-nil.
	Environment map[string]string
}

// Load reads path with the process environment. See Loader.Load.
func Load(path string) (*Config, error) {
	return (&Loader{}).Load(path)
}

// Load returns the defaults overlaid with the file at path and then with
// BLOCKFMT_* environment variables. An empty path or a missing file yields
// the defaults. Missing option titles are derived from model names.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := l.readFile(path)
		if err != nil {
			return nil, err
		}
		if file != nil {
			merge(cfg, file)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Heading.Options {
		if cfg.Heading.Options[i].Title == "" {
			cfg.Heading.Options[i].Title = Label(cfg.Heading.Options[i].Model)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(path, data)
	case ".json":
		return parseJSON(path, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parseTOML(source string, data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return &cfg, nil
}

func parseJSON(source string, data []byte) (*Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}

	var cfg Config
	doc := gjson.ParseBytes(data)

	cfg.Heading.Default = doc.Get("heading.default").String()
	doc.Get("heading.options").ForEach(func(_, opt gjson.Result) bool {
		cfg.Heading.Options = append(cfg.Heading.Options, FormatOption{
			Model: opt.Get("model").String(),
			View:  opt.Get("view").String(),
			Title: opt.Get("title").String(),
		})
		return true
	})

	log := doc.Get("log")
	cfg.Log.Level = log.Get("level").String()
	cfg.Log.Format = log.Get("format").String()
	cfg.Log.File = log.Get("file").String()
	cfg.Log.MaxSizeMB = int(log.Get("max_size_mb").Int())
	cfg.Log.MaxBackups = int(log.Get("max_backups").Int())
	cfg.Log.MaxAgeDays = int(log.Get("max_age_days").Int())
	return &cfg, nil
}

// merge copies the non-zero settings of src into dst. A non-empty option
// list replaces the default list entirely.
func merge(dst, src *Config) {
	if src.Heading.Default != "" {
		dst.Heading.Default = src.Heading.Default
	}
	if len(src.Heading.Options) > 0 {
		dst.Heading.Options = src.Heading.Options
	}
	setString(&dst.Log.Level, src.Log.Level)
	setString(&dst.Log.Format, src.Log.Format)
	setString(&dst.Log.File, src.Log.File)
	setInt(&dst.Log.MaxSizeMB, src.Log.MaxSizeMB)
	setInt(&dst.Log.MaxBackups, src.Log.MaxBackups)
	setInt(&dst.Log.MaxAgeDays, src.Log.MaxAgeDays)
}

func (l *Loader) applyEnv(cfg *Config) error {
	var o envOverrides
	opts := env.Options{Prefix: EnvPrefix, Environment: l.Environment}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	setString(&cfg.Heading.Default, o.HeadingDefault)
	setString(&cfg.Log.Level, o.LogLevel)
	setString(&cfg.Log.Format, o.LogFormat)
	setString(&cfg.Log.File, o.LogFile)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Label derives a title from a model name by splitting it into words at
// letter/digit and case boundaries: "heading1" becomes "Heading 1" and
// "codeBlock" becomes "Code Block".
func Label(model string) string {
	var sb strings.Builder
	var prev rune
	for i, r := range model {
		if r == '_' || r == '-' {
			r = ' '
		}
		if i > 0 && prev != ' ' && r != ' ' && wordBoundary(prev, r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return cases.Title(language.English).String(strings.Join(strings.Fields(sb.String()), " "))
}

func wordBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	}
	return false
}
