// Package config loads the rendering configuration the CLI layers on top of diagram source:
// a character-palette theme, a default-direction override, and a color toggle. It wraps
// spf13/viper over gopkg.in/yaml.v3 so settings can come from a YAML file, an MERIDIAN_-prefixed
// environment variable, or a flag, in that ascending precedence, and so a running watch session
// can pick up theme edits live via viper's fsnotify-backed file watch.
package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/meridian-diagrams/meridian/diagram"
)

// Theme holds the loaded character palette, default layout direction, and color toggle. Only
// Color is acted on (by the render command); Palette and DefaultDirection are validated on load
// but no renderer or command applies them.
type Theme struct {
	// Palette names a glyph set: "ascii" (+, -, |) or "unicode" (box-drawing characters). The
	// renderers always draw box-drawing characters, so "ascii" is accepted but has no effect.
	Palette string `mapstructure:"palette" yaml:"palette"`
	// DefaultDirection names a direction (TD, TB, BT, LR, or RL), or is empty. It is validated
	// on load but not applied: every diagram uses its source's or its plugin's own direction.
	DefaultDirection string `mapstructure:"defaultDirection" yaml:"defaultDirection"`
	// Color enables ANSI coloring of node borders and edge lines when the output stream is a
	// terminal.
	Color bool `mapstructure:"color" yaml:"color"`
}

// defaultTheme matches the renderer's current hardcoded behavior: unicode glyphs, no forced
// direction, no color.
func defaultTheme() Theme {
	return Theme{Palette: "unicode", Color: false}
}

// Config owns the viper instance backing a loaded Theme, so a caller can re-read it after
// OnConfigChange fires.
type Config struct {
	v     *viper.Viper
	theme Theme
}

// Load reads theme configuration from defaults, configPath (if non-empty and present), and
// environment variables prefixed MERIDIAN_, in that ascending precedence. A missing configPath
// is not an error: defaults plus environment overrides still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MERIDIAN")
	v.AutomaticEnv()

	def := defaultTheme()
	v.SetDefault("palette", def.Palette)
	v.SetDefault("defaultDirection", def.DefaultDirection)
	v.SetDefault("color", def.Color)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: reading %q: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: stat %q: %w", configPath, err)
		}
	}

	c := &Config{v: v}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) reload() error {
	var t Theme
	if err := c.v.Unmarshal(&t); err != nil {
		return fmt.Errorf("config: decoding theme: %w", err)
	}
	if t.Palette != "ascii" && t.Palette != "unicode" {
		return fmt.Errorf("config: palette must be %q or %q, got %q", "ascii", "unicode", t.Palette)
	}
	if t.DefaultDirection != "" {
		if _, ok := diagram.ParseDirection(t.DefaultDirection); !ok {
			return fmt.Errorf("config: unknown defaultDirection %q", t.DefaultDirection)
		}
	}
	c.theme = t
	return nil
}

// Theme returns the currently loaded theme.
func (c *Config) Theme() Theme {
	return c.theme
}

// Watch arranges for theme to be re-decoded whenever the backing config file changes on disk,
// invoking onChange (if non-nil) after each successful reload. It is a no-op if Load was called
// with an empty configPath, since viper.WatchConfig has no file to watch.
func (c *Config) Watch(onChange func(Theme)) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if err := c.reload(); err == nil && onChange != nil {
			onChange(c.theme)
		}
	})
	c.v.WatchConfig()
}
