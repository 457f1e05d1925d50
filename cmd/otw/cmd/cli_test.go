package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pkt.systems/pslog"
)

const testdata = "../../../pkg/dump/testdata"

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", "")

	var logs bytes.Buffer
	logger := pslog.NewWithOptions(&logs, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	ctx := pslog.ContextWithLogger(context.Background(), logger)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestVarsE2E(t *testing.T) {
	cpu := filepath.Join(testdata, "cpu.otw")
	bus := filepath.Join(testdata, "bus.otw")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "scope with parameters section",
			args: []string{"vars", cpu, "--scope", "top"},
			want: `top/
  [Parameters]
    DEPTH
    WIDTH
  clk
  data[7:0]
  rst_n
  sig2
  sig10
`,
		},
		{
			name: "filter leaves parameters alone",
			args: []string{"vars", cpu, "--scope", "top", "--filter", "SIG"},
			want: `top/
  [Parameters]
    DEPTH
    WIDTH
  sig2
  sig10
`,
		},
		{
			name: "case sensitive filter",
			args: []string{"vars", cpu, "--scope", "top", "--filter", "SIG", "--case-sensitive"},
			want: `top/
  [Parameters]
    DEPTH
    WIDTH
`,
		},
		{
			name: "parameters shown inline are filtered",
			args: []string{"vars", cpu, "--scope", "top", "--show-params", "--type", "start", "--filter", "w"},
			want: "top/\n  WIDTH\n",
		},
		{
			name: "glob over nested scopes",
			args: []string{"vars", cpu, "--scope", "top.cpu*", "--type", "regex", "--filter", "^(pc|op)$"},
			want: "top.cpu/\n  pc\ntop.cpu.alu/\n  op\n",
		},
		{
			name: "invalid regex matches nothing",
			args: []string{"vars", cpu, "--scope", "top.mem", "--type", "regex", "--filter", "("},
			want: "top.mem/\n",
		},
		{
			name: "stream root lists streams",
			args: []string{"vars", bus},
			want: "tr/\n  axi\n  irq\n",
		},
		{
			name: "stream generators keep backend order",
			args: []string{"vars", bus, "--scope", "axi", "--filter", "e"},
			want: "axi/\n  write\n  read\n  idle\n",
		},
		{
			name:    "unknown filter type",
			args:    []string{"vars", cpu, "--type", "soundex"},
			wantErr: true,
		},
		{
			name:    "no matching scope",
			args:    []string{"vars", cpu, "--scope", "nowhere"},
			wantErr: true,
		},
		{
			name:    "missing dump",
			args:    []string{"vars", filepath.Join(testdata, "missing.otw")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got output:\n%s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVarsJSON(t *testing.T) {
	out, err := execute(t, "vars", filepath.Join(testdata, "cpu.otw"), "--scope", "top.mem", "--json")
	if err != nil {
		t.Fatalf("vars --json: %v", err)
	}
	var got []ScopeListing
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := []ScopeListing{{Scope: "top.mem", Variables: []string{"addr", "we"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestScopesE2E(t *testing.T) {
	out, err := execute(t, "scopes", filepath.Join(testdata, "cpu.otw"))
	if err != nil {
		t.Fatalf("scopes: %v", err)
	}
	want := "top/\n  cpu/\n    alu/\n  mem/\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("scopes mismatch (-want +got):\n%s", diff)
	}

	out, err = execute(t, "scopes", filepath.Join(testdata, "bus.otw"), "--tree")
	if err != nil {
		t.Fatalf("scopes --tree: %v", err)
	}
	want = `tr/
  axi/
    write
    read
    idle
  irq/
    raise line
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("scopes --tree mismatch (-want +got):\n%s", diff)
	}
}

func TestScopesTreeWaves(t *testing.T) {
	out, err := execute(t, "scopes", filepath.Join(testdata, "cpu.otw"), "--tree")
	if err != nil {
		t.Fatalf("scopes --tree: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	wantPrefix := []string{
		"top/",
		"  cpu/",
		"    alu/",
		"      op",
		"      result",
		"    ir[31:0]",
		"    pc",
		"  mem/",
		"    addr",
		"    we",
		"  [Parameters]",
		"    DEPTH",
		"    WIDTH",
		"  clk",
	}
	if len(lines) < len(wantPrefix) {
		t.Fatalf("too few lines:\n%s", out)
	}
	if diff := cmp.Diff(wantPrefix, lines[:len(wantPrefix)]); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "otw "+Version+"\n" {
		t.Fatalf("version output = %q", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otw", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("init output %q does not name %s", out, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := execute(t, "config", "init", "--config", path); err == nil {
		t.Fatalf("expected init to refuse overwriting")
	}
	if _, err := execute(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out, err = execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"config_version: 1", "hierarchy_style: Separate", "show_parameters_in_scopes: false"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
}
