// ABOUTME: Standard filesystem paths for pi-prompt configuration
// ABOUTME: Resolves ~/.pi-prompt/ for global and .pi-prompt/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".pi-prompt"
	projectDirName = ".pi-prompt"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.pi-prompt/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}

// ThemesDir returns the directory searched for theme files by name.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}
