// ABOUTME: Tests for config loading, merging, and validation
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	off := false
	global := &Settings{Theme: "dark", PageSize: 10, MaskChar: "•"}
	project := &Settings{Theme: "light", Driver: "SCREEN", LoopSelection: &off}

	result := merge(global, project)

	if result.Theme != "light" {
		t.Errorf("Theme = %q, want %q", result.Theme, "light")
	}
	if result.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", result.PageSize)
	}
	if result.Driver != DriverScreen {
		t.Errorf("Driver = %q, want %q", result.Driver, DriverScreen)
	}
	if result.LoopSelection == nil || *result.LoopSelection {
		t.Error("LoopSelection not overridden to false")
	}
	if result.MaskChar != "•" {
		t.Errorf("MaskChar = %q, want global value", result.MaskChar)
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if result := merge(nil, nil); result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := LoadFile("/nonexistent/path/config.yaml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
	if s == nil {
		t.Error("expected non-nil empty settings")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    Settings
		wantErr bool
	}{
		{
			name: "all fields",
			data: "theme: mono\ndriver: screen\ncancel_behavior: exit\npage_size: 4\nmask_char: '#'\nlog_level: debug\n",
			want: Settings{Theme: "mono", Driver: "screen", CancelBehavior: "exit", PageSize: 4, MaskChar: "#", LogLevel: "debug"},
		},
		{name: "empty file", data: "", want: Settings{}},
		{name: "bad yaml", data: "page_size: [1, 2", wantErr: true},
		{name: "wrong type", data: "page_size: many\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.data)

			s, err := LoadFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if *s != tt.want {
				t.Errorf("LoadFile() = %+v, want %+v", *s, tt.want)
			}
		})
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, ".pi-prompt", "config.yaml"), "theme: dark\npage_size: 12\n")
	writeFile(t, filepath.Join(project, ".pi-prompt", "config.yaml"), "page_size: 3\nloop_selection: false\n")

	s, err := Load(project)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Theme != "dark" {
		t.Errorf("Theme = %q, want global value", s.Theme)
	}
	if s.PageSize != 3 {
		t.Errorf("PageSize = %d, want project value 3", s.PageSize)
	}
	if s.LoopSelection == nil || *s.LoopSelection {
		t.Error("LoopSelection should be false from project config")
	}
	if s.Driver != DriverANSI || s.CancelBehavior != CancelError {
		t.Errorf("defaults lost: driver %q cancel %q", s.Driver, s.CancelBehavior)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Defaults()
	if s.Theme != want.Theme || s.PageSize != want.PageSize || s.MaskChar != want.MaskChar {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".pi-prompt", "config.yaml"), "driver: gui\npage_size: -1\n")

	_, err := Load(project)
	if err == nil {
		t.Fatal("Load() accepted invalid settings")
	}
	for _, want := range []string{"driver", "page_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{name: "zero value", s: Settings{}},
		{name: "defaults", s: *Defaults()},
		{name: "bad cancel", s: Settings{CancelBehavior: "panic"}, wantErr: true},
		{name: "long mask", s: Settings{MaskChar: "**"}, wantErr: true},
		{name: "wide mask ok", s: Settings{MaskChar: "●"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := ProjectConfigFile("/work"); got != filepath.Join("/work", ".pi-prompt", "config.yaml") {
		t.Errorf("ProjectConfigFile() = %q", got)
	}
	if !strings.HasSuffix(GlobalConfigFile(), filepath.Join(".pi-prompt", "config.yaml")) {
		t.Errorf("GlobalConfigFile() = %q", GlobalConfigFile())
	}
	if !strings.HasSuffix(ThemesDir(), filepath.Join(".pi-prompt", "themes")) {
		t.Errorf("ThemesDir() = %q", ThemesDir())
	}
}

func TestLoadExplicit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "driver: screen\npage_size: 3\n")

	s, err := LoadExplicit(path)
	if err != nil {
		t.Fatalf("LoadExplicit: %v", err)
	}
	if s.Driver != DriverScreen || s.PageSize != 3 {
		t.Errorf("settings = %+v", s)
	}
	if s.Theme != "default" || s.MaskChar != "*" {
		t.Errorf("defaults not applied: %+v", s)
	}

	if _, err := LoadExplicit(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "cancel_behavior: shrug\n")
	if _, err := LoadExplicit(bad); err == nil || !strings.Contains(err.Error(), "cancel_behavior") {
		t.Errorf("invalid file error = %v", err)
	}
}
