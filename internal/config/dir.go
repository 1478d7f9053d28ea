// Package config provides configuration loading for outpost.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the outpost configuration directory.
//
// Resolution:
//   - $OUTPOST_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/outpost if set (respects XDG on any platform)
//   - %AppData%/outpost on Windows
//   - ~/.config/outpost on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("OUTPOST_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "outpost")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "outpost")
		}
	}

	// macOS and Linux: ~/.config/outpost
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "outpost")
}
