//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine-wide configuration directory.
func SystemConfigDir() string {
	if pd := os.Getenv("ProgramData"); pd != "" {
		return filepath.Join(pd, baseName)
	}
	return ""
}
