// Package config holds the viewer settings read at startup: panel layout,
// theme colors and the session file location.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
)

// CurrentConfigVersion is the config_version this build understands.
const CurrentConfigVersion = 1

// Config is the on-disk configuration.
type Config struct {
	ConfigVersion int          `mapstructure:"config_version" yaml:"config_version"`
	Layout        LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Theme         ThemeConfig  `mapstructure:"theme" yaml:"theme"`
	SessionFile   string       `mapstructure:"session_file" yaml:"session_file"`
}

// LayoutConfig controls the hierarchy panel.
type LayoutConfig struct {
	ShowParametersInScopes bool   `mapstructure:"show_parameters_in_scopes" yaml:"show_parameters_in_scopes"`
	HierarchyStyle         string `mapstructure:"hierarchy_style" yaml:"hierarchy_style"`
}

// ThemeConfig holds hex colors for normal and error states.
type ThemeConfig struct {
	Primary ColorPair `mapstructure:"primary" yaml:"primary"`
	Error   ColorPair `mapstructure:"error" yaml:"error"`
}

// ColorPair is a foreground/background pair of "#rrggbb" colors.
type ColorPair struct {
	Foreground string `mapstructure:"foreground" yaml:"foreground"`
	Background string `mapstructure:"background" yaml:"background"`
}

// Palette is the parsed theme.
type Palette struct {
	PrimaryFg, PrimaryBg colorful.Color
	ErrorFg, ErrorBg     colorful.Color
}

// DefaultConfig returns the built-in settings. The session file lives next
// to the default config file.
func DefaultConfig() (Config, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Layout: LayoutConfig{
			ShowParametersInScopes: false,
			HierarchyStyle:         hierarchy.Separate.String(),
		},
		Theme: ThemeConfig{
			Primary: ColorPair{Foreground: "#e6e6e6", Background: "#1e1f22"},
			Error:   ColorPair{Foreground: "#ffffff", Background: "#8b1e1e"},
		},
		SessionFile: filepath.Join(dir, "session.yaml"),
	}, nil
}

// DefaultConfigDir is %APPDATA%\OpenTraceWave on Windows and
// ~/.config/opentracewave elsewhere.
func DefaultConfigDir() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "OpenTraceWave"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(homeDir, ".config", "opentracewave"), nil
}

// DefaultConfigPath returns the config file used when none is given.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Style parses the configured hierarchy style.
func (c Config) Style() hierarchy.Style {
	return hierarchy.ParseStyle(c.Layout.HierarchyStyle)
}

// ScopeOptions returns the resolver options derived from the layout.
func (c Config) ScopeOptions() scope.Options {
	return scope.Options{ShowParametersInScopes: c.Layout.ShowParametersInScopes}
}

// Palette parses the theme colors.
func (c Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.PrimaryFg, p.PrimaryBg, err = c.Theme.Primary.parse("theme.primary"); err != nil {
		return Palette{}, err
	}
	if p.ErrorFg, p.ErrorBg, err = c.Theme.Error.parse("theme.error"); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func (cp ColorPair) parse(key string) (fg, bg colorful.Color, err error) {
	if fg, err = colorful.Hex(cp.Foreground); err != nil {
		return fg, bg, fmt.Errorf("config: %s.foreground %q: %w", key, cp.Foreground, err)
	}
	if bg, err = colorful.Hex(cp.Background); err != nil {
		return fg, bg, fmt.Errorf("config: %s.background %q: %w", key, cp.Background, err)
	}
	return fg, bg, nil
}

