// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; project values override global ones

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cancel behaviours accepted in the cancel_behavior setting.
const (
	CancelError = "error"
	CancelExit  = "exit"
)

// Drivers accepted in the driver setting.
const (
	DriverANSI   = "ansi"
	DriverScreen = "screen"
)

// Settings holds the merged configuration.
type Settings struct {
	// Theme is a builtin theme name or a path to a theme file.
	Theme          string `yaml:"theme,omitempty"`
	Driver         string `yaml:"driver,omitempty"`
	CancelBehavior string `yaml:"cancel_behavior,omitempty"`
	PageSize       int    `yaml:"page_size,omitempty"`
	LoopSelection  *bool  `yaml:"loop_selection,omitempty"`
	MaskChar       string `yaml:"mask_char,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// Defaults returns the settings used when no file sets a value.
func Defaults() *Settings {
	loop := true
	return &Settings{
		Theme:          "default",
		Driver:         DriverANSI,
		CancelBehavior: CancelError,
		PageSize:       7,
		LoopSelection:  &loop,
		MaskChar:       "*",
		LogLevel:       "warn",
	}
}

// Load reads the global and project-local settings and merges them over the
// defaults. Project settings override global settings. Missing files are
// not an error.
func Load(projectRoot string) (*Settings, error) {
	global, err := LoadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := LoadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(merge(Defaults(), global), project)
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// LoadExplicit reads one settings file over the defaults, ignoring the
// global and project files. The file must exist.
func LoadExplicit(path string) (*Settings, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	merged := merge(Defaults(), s)
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// LoadFile reads Settings from a YAML file. It returns empty Settings
// together with the error when the file does not exist.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks enumerated and numeric settings.
func (s *Settings) Validate() error {
	var errs []error
	switch s.Driver {
	case "", DriverANSI, DriverScreen:
	default:
		errs = append(errs, fmt.Errorf("driver %q: want %s or %s", s.Driver, DriverANSI, DriverScreen))
	}
	switch s.CancelBehavior {
	case "", CancelError, CancelExit:
	default:
		errs = append(errs, fmt.Errorf("cancel_behavior %q: want %s or %s", s.CancelBehavior, CancelError, CancelExit))
	}
	if s.PageSize < 0 {
		errs = append(errs, fmt.Errorf("page_size %d: must not be negative", s.PageSize))
	}
	if n := len([]rune(s.MaskChar)); n > 1 {
		errs = append(errs, fmt.Errorf("mask_char %q: at most one character", s.MaskChar))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// merge overlays the non-zero values of project onto global.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Theme != "" {
		result.Theme = project.Theme
	}
	if project.Driver != "" {
		result.Driver = strings.ToLower(project.Driver)
	}
	if project.CancelBehavior != "" {
		result.CancelBehavior = strings.ToLower(project.CancelBehavior)
	}
	if project.PageSize != 0 {
		result.PageSize = project.PageSize
	}
	if project.LoopSelection != nil {
		loop := *project.LoopSelection
		result.LoopSelection = &loop
	}
	if project.MaskChar != "" {
		result.MaskChar = project.MaskChar
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}

	return &result
}
