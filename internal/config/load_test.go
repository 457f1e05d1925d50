package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", "")
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimLeft(body, "\n")), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := isolateHome(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("config_version = %d", cfg.ConfigVersion)
	}
	if cfg.Style() != hierarchy.Separate || cfg.ScopeOptions().ShowParametersInScopes {
		t.Fatalf("unexpected layout defaults %+v", cfg.Layout)
	}
	want := filepath.Join(home, ".config", "opentracewave", "session.yaml")
	if cfg.SessionFile != want {
		t.Fatalf("session_file = %q, want %q", cfg.SessionFile, want)
	}
}

func TestLoadOverridesLayoutAndTheme(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, `
config_version: 1
layout:
  show_parameters_in_scopes: true
  hierarchy_style: Tree
theme:
  error:
    background: "#ff0000"
session_file: /tmp/otw-session.yaml
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style() != hierarchy.Tree {
		t.Fatalf("style = %s, want Tree", cfg.Style())
	}
	if !cfg.ScopeOptions().ShowParametersInScopes {
		t.Fatalf("show_parameters_in_scopes not applied")
	}
	if cfg.SessionFile != "/tmp/otw-session.yaml" {
		t.Fatalf("session_file = %q", cfg.SessionFile)
	}
	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	r, g, b := p.ErrorBg.RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("error background = %d,%d,%d", r, g, b)
	}
	if cfg.Theme.Primary.Foreground != "#e6e6e6" {
		t.Fatalf("primary foreground default lost: %q", cfg.Theme.Primary.Foreground)
	}
}

func TestLoadUnknownStyleFallsBack(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, `
config_version: 1
layout:
  hierarchy_style: Columns
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style() != hierarchy.Separate {
		t.Fatalf("style = %s, want Separate", cfg.Style())
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	isolateHome(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"version", "config_version: 7\n", "unsupported config_version"},
		{"color", "config_version: 1\ntheme:\n  primary:\n    foreground: red\n", "theme.primary.foreground"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolateHome(t)
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}
	cfg.Layout.HierarchyStyle = "Tree"
	cfg.Theme.Primary.Background = "#102030"
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}
