//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errInstallUnsupported = errors.New("install is only supported on linux (systemd)")

func install(*slog.Logger, string, string, string) error { return errInstallUnsupported }

func uninstall(*slog.Logger, string) error { return errInstallUnsupported }
