package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for tm, stored in ~/.tm/config.yaml.
type Config struct {
	// Tags is the ordered tag set offered by the entry form.
	Tags []string `yaml:"tags"`
	// DefaultTitle replaces an empty title.
	DefaultTitle string `yaml:"default_title"`
	// DefaultTag replaces an empty tag.
	DefaultTag string `yaml:"default_tag"`
	// OtherTag is the catch-all tag that takes a free-text override.
	OtherTag string `yaml:"other_tag"`
	// Seed adds the two example entries to every new session.
	Seed *bool `yaml:"seed"`
	// Timezone is the IANA zone used for "today" and greetings. Empty = local.
	Timezone string `yaml:"timezone"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	DefaultTitle    = "Untitled"
	DefaultTag      = "Untagged"
	DefaultOtherTag = "Other"
	DefaultLogLevel = "warn"
)

// DefaultTags mirrors the tag set of a fresh install.
var DefaultTags = []string{"Mind", "Body", "Fun", "Community", DefaultOtherTag}

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	seed := true
	return Config{
		Tags:         append([]string(nil), DefaultTags...),
		DefaultTitle: DefaultTitle,
		DefaultTag:   DefaultTag,
		OtherTag:     DefaultOtherTag,
		Seed:         &seed,
		LogLevel:     DefaultLogLevel,
	}
}

// SeedEnabled reports whether example entries should be added.
func (c Config) SeedEnabled() bool {
	return c.Seed == nil || *c.Seed
}

// Location resolves Timezone. An empty zone yields time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Template is the annotated config written by `tm config init`.
const Template = `# tm configuration – ~/.tm/config.yaml
#
# All settings are optional; the values below are the built-in defaults.
# Entries themselves are never saved: every session starts fresh.

# Tags offered by the entry form, in display order.
tags:
  - Mind
  - Body
  - Fun
  - Community
  - Other

# Picking this catch-all tag lets you type a free-text tag instead.
# Rename it together with its entry in tags.
other_tag: Other

# Placeholders stored when a title or tag is left empty.
default_title: Untitled
default_tag: Untagged

# Start every session with the two example entries.
seed: true

# IANA timezone for "today" and the greeting, e.g. "Europe/Berlin".
# Leave empty to use the system's local time.
timezone: ""

# Diagnostics written to stderr: debug, info, warn or error.
log_level: warn
`

// DefaultPath returns the path to ~/.tm/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tm", "config.yaml"), nil
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: run `tm config init --force` to regenerate defaults", path, err)
	}

	// Fill zero-value fields so a partially filled file is still usable.
	def := Default()
	if len(cfg.Tags) == 0 {
		cfg.Tags = def.Tags
	}
	if cfg.DefaultTitle == "" {
		cfg.DefaultTitle = def.DefaultTitle
	}
	if cfg.DefaultTag == "" {
		cfg.DefaultTag = def.DefaultTag
	}
	if cfg.OtherTag == "" {
		cfg.OtherTag = def.OtherTag
	}
	if cfg.Seed == nil {
		cfg.Seed = def.Seed
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}

	if _, err := cfg.Location(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault creates the config directory and writes Template to path.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
