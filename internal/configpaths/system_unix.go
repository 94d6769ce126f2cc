//go:build !windows

package configpaths

import (
	"os"
	"path/filepath"
)

var geteuid = os.Geteuid

// SystemConfigDir returns the machine-wide configuration directory. Only
// root (the installed service) reads /etc/tankctl; other users get "".
func SystemConfigDir() string {
	if geteuid() != 0 {
		return ""
	}
	return filepath.Join(string(os.PathSeparator), "etc", baseName)
}
