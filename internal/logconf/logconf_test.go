// SPDX-License-Identifier: MPL-2.0

package logconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meadows/meadows/internal/config"
	"github.com/meadows/meadows/internal/process"
	"github.com/meadows/meadows/internal/testutil"
	"github.com/meadows/meadows/pkg/cueutil"

	"github.com/charmbracelet/log"
)

type noDirs struct{}

func (noDirs) HomeDir() (string, bool)         { return "", false }
func (noDirs) ConfigDir() (string, bool)       { return "", false }
func (noDirs) ConfigLocalDir() (string, bool)  { return "", false }
func (noDirs) SystemConfigDir() (string, bool) { return "", false }

type fixture struct {
	dir    string
	pc     *process.Context
	stdout bytes.Buffer
	stderr bytes.Buffer
	loader *Loader
}

func newFixture(t *testing.T, kind process.Kind, env map[string]string) *fixture {
	t.Helper()

	f := &fixture{dir: t.TempDir()}
	exe := filepath.Join(f.dir, "bin", "app")
	if kind.IsTest() {
		exe = filepath.Join(f.dir, "bin", "app-00112233445566ff")
	}
	f.pc = process.NewContext(kind,
		process.WithArgs0(exe),
		process.WithExecutable(func() (string, error) { return exe, nil }),
		process.WithGetwd(func() (string, error) { return f.dir, nil }),
		process.WithGetenv(func(k string) string { return env[k] }),
		process.WithSetenv(func(string, string) error { return nil }),
		process.WithPid(42),
		process.WithDirs(noDirs{}),
	)
	resolver := config.NewResolver(f.pc, config.WithTraceSink(config.NopSink))
	f.loader = NewLoader(f.pc, resolver, WithOutput(&f.stdout, &f.stderr), WithArgs([]string{"--flag"}))
	return f
}

func (f *fixture) write(t *testing.T, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(f.dir, "app.log.toml"), content)
}

func quietOptions(pc *process.Context) Options {
	opts := NewOptions(pc)
	opts.LogStart = false
	opts.PrintPath = false
	return opts
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, nil)
	path := f.write(t, `
title = "Test logging"
level = "debug"
formatter = "json"
prefix = "${name}[${pid}]"
`)

	loaded, err := f.loader.Load(t.Context(), quietOptions(f.pc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Path != path {
		t.Errorf("Path = %q, want %q", loaded.Path, path)
	}

	want := Settings{
		Title:     "Test logging",
		Level:     "debug",
		Formatter: "json",
		Prefix:    "app[42]",
		Output:    "stderr",
	}
	if loaded.Settings != want {
		t.Errorf("Settings = %+v, want %+v", loaded.Settings, want)
	}
	if !f.pc.Env().Published() {
		t.Error("process variables not published before loading")
	}
}

func TestLoader_LoadEmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, nil)
	f.write(t, "")

	loaded, err := f.loader.Load(t.Context(), quietOptions(f.pc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Settings != DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults %+v", loaded.Settings, DefaultSettings())
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		op      string
	}{
		{"invalid toml", "level = \n", OpDecode},
		{"unknown level", `level = "loud"`, OpValidate},
		{"unknown key", `colour = "red"`, OpValidate},
		{"wrong type", `timestamp = "yes"`, OpValidate},
		{"file output unsupported", `output = "file"`, OpValidate},
		{"command substitution", `prefix = "$(hostname)"`, OpExpand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, process.KindBinary, nil)
			path := f.write(t, tt.content)

			_, err := f.loader.Load(t.Context(), quietOptions(f.pc))
			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("Load() error = %v, want *InitError", err)
			}
			if initErr.Op != tt.op {
				t.Errorf("Op = %q, want %q (%v)", initErr.Op, tt.op, err)
			}
			if initErr.Path != path {
				t.Errorf("Path = %q, want %q", initErr.Path, path)
			}
			if !initErr.ShouldPrint() {
				t.Error("ShouldPrint() = false, want true")
			}
			if tt.op == OpValidate {
				var verr *cueutil.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error = %v, want *cueutil.ValidationError", err)
				}
			}
		})
	}
}

func TestLoader_LoadNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, nil)

	_, err := f.loader.Load(t.Context(), quietOptions(f.pc))
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Fatalf("Load() error = %v, want ErrFileNotFound", err)
	}
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Op != OpFind {
		t.Fatalf("Load() error = %v, want find InitError", err)
	}
	if initErr.ShouldPrint() {
		t.Error("ShouldPrint() = true for a missing file")
	}
}

func TestLoader_LoadFromPathList(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, nil)
	f.write(t, `level = "warn"`)
	custom := testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "custom.toml"), `level = "error"`)

	opts := quietOptions(f.pc)
	opts.Paths = custom
	loaded, err := f.loader.Load(t.Context(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Path != custom || loaded.Settings.Level != "error" {
		t.Errorf("Load() = %s (%s), want %s (error)", loaded.Path, loaded.Settings.Level, custom)
	}
}

func TestLoader_Configure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, nil)
	path := f.write(t, "title = \"Demo\"\noutput = \"stdout\"\n")

	logging, err := f.loader.Configure(t.Context(), NewOptions(f.pc))
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if logging.Path != path {
		t.Errorf("Path = %q, want %q", logging.Path, path)
	}

	out := f.stdout.String()
	wantNote := "app: Note: Loaded configuration file `" + path + "` titled \"Demo\"\n"
	if !strings.HasPrefix(out, wantNote) {
		t.Errorf("stdout does not start with the note:\n%s", out)
	}
	for _, want := range []string{"Process started: app", "Log-configuration file: ", `- "--flag"`} {
		if !strings.Contains(out, want) {
			t.Errorf("start message missing %q:\n%s", want, out)
		}
	}
	if f.stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", f.stderr.String())
	}
}

func TestLoader_ConfigureDebugLevel(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, map[string]string{EnvDebug: "true"})
	f.write(t, `level = "error"`)

	opts := quietOptions(f.pc)
	if !opts.Debug {
		t.Fatalf("NewOptions() Debug = false with %s=true", EnvDebug)
	}
	logging, err := f.loader.Configure(t.Context(), opts)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if got := logging.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}

func TestSettings_NewLogger(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	s := DefaultSettings()
	s.Formatter = "json"
	s.Output = "stdout"
	s.Prefix = "app"

	logger, err := s.NewLogger(&stdout, &stderr)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("hello", "key", "value")
	logger.Debug("hidden")

	var entry map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &entry); err != nil {
		t.Fatalf("output is not one JSON entry: %v\n%s", err, stdout.String())
	}
	if entry["msg"] != "hello" || entry["key"] != "value" || entry["prefix"] != "app" {
		t.Errorf("entry = %v", entry)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}

	s.Level = "verbose"
	if _, err := s.NewLogger(&stdout, &stderr); err == nil {
		t.Error("NewLogger() accepted an unknown level")
	}
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	want := Settings{Level: "info", Formatter: "text", Output: "stderr"}
	if got := DefaultSettings(); got != want {
		t.Errorf("DefaultSettings() = %+v, want %+v", got, want)
	}
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindUnitTest, map[string]string{EnvPaths: "/a" + string(os.PathListSeparator) + "/b"})
	opts := NewOptions(f.pc)

	want := Options{
		Kind:      process.KindUnitTest,
		LogStart:  true,
		Name:      "app",
		Paths:     "/a" + string(os.PathListSeparator) + "/b",
		PrintPath: true,
		TextWidth: DefaultTextWidth,
	}
	if opts != want {
		t.Errorf("NewOptions() = %+v, want %+v", opts, want)
	}
}

func TestFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"single line", "hello", 6, "#####\n#\n# hello\n#\n#####"},
		{"multi line", "a\n\nb", 4, "###\n#\n# a\n# \n# b\n#\n###"},
		{"narrow", "x", 0, "#\n#\n# x\n#\n#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Fence(tt.text, '#', tt.width); got != tt.want {
				t.Errorf("Fence() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestStartMessage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindBinary, nil)
	msg := f.loader.StartMessage("", 20)

	lines := strings.Split(msg, "\n")
	if lines[0] != strings.Repeat("#", 19) || lines[len(lines)-1] != strings.Repeat("#", 19) {
		t.Errorf("message is not fenced:\n%s", msg)
	}
	for _, want := range []string{
		"# Process started: app",
		"# Log-configuration file: N/A",
		"# Current directory: " + `"` + f.dir + `"`,
		"# Arguments:",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestInit_KindMismatch(t *testing.T) {
	t.Parallel()

	binary := newFixture(t, process.KindBinary, nil)
	if _, err := InitTest(t.Context(), binary.loader, NewOptions(binary.pc)); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("InitTest(binary) error = %v, want ErrKindMismatch", err)
	}

	example := newFixture(t, process.KindExample, nil)
	if _, err := Init(t.Context(), example.loader, NewOptions(example.pc)); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Init(example) error = %v, want ErrKindMismatch", err)
	}
}

func TestInitTest_OncePerProcess(t *testing.T) {
	t.Parallel()

	f := newFixture(t, process.KindIntegTest, nil)
	opts := quietOptions(f.pc)

	first, err := InitTest(t.Context(), f.loader, opts)
	if err != nil {
		t.Fatalf("InitTest() error = %v", err)
	}
	if first.Path != "" || first.Settings != DefaultSettings() {
		t.Errorf("InitTest() without a file = %+v, want defaults", first)
	}

	f.write(t, `level = "debug"`)
	second, err := InitTest(t.Context(), f.loader, opts)
	if err != nil {
		t.Fatalf("second InitTest() error = %v", err)
	}
	if second != first {
		t.Error("second InitTest() configured logging again")
	}
	if log.Default() != first.Logger {
		t.Error("default logger not replaced")
	}
}
