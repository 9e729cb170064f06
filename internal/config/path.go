package config

import (
	"os"
	"path/filepath"
)

const fileName = "xtagwm.yaml"

// DefaultPath returns $XDG_CONFIG_HOME/xtagwm/xtagwm.yaml, falling back to
// the working directory when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(dir, "xtagwm", fileName)
}
