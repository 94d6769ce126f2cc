//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const unitTemplate = `[Unit]
Description=tankctl track drive
After=bluetooth.target dev-serial0.device

[Service]
ExecStart=%s drive%s
Restart=on-failure
RestartSec=2

[Install]
WantedBy=multi-user.target
`

// UnitFile renders the systemd unit running exe.
func UnitFile(exe, args string) string {
	if args = strings.TrimSpace(args); args != "" {
		args = " " + args
	}
	return fmt.Sprintf(unitTemplate, exe, args)
}

func install(logger *slog.Logger, exe, unit, args string) error {
	if err := os.WriteFile(unit, []byte(UnitFile(exe, args)), 0o644); err != nil {
		return fmt.Errorf("write unit: %w", err)
	}
	logger.Debug("unit written", "path", unit)

	name := filepath.Base(unit)
	if err := systemctl(logger, "daemon-reload"); err != nil {
		return err
	}
	if err := systemctl(logger, "enable", "--now", name); err != nil {
		return err
	}

	logger.Info("tankctl install completed", "unit", unit, "exe", exe)
	return nil
}

func uninstall(logger *slog.Logger, unit string) error {
	name := filepath.Base(unit)
	if err := systemctl(logger, "disable", "--now", name); err != nil {
		logger.Warn("failed to disable unit", "unit", name, "error", err)
	}

	if err := os.Remove(unit); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove unit: %w", err)
	}
	if err := systemctl(logger, "daemon-reload"); err != nil {
		return err
	}

	logger.Info("tankctl uninstall completed", "unit", unit)
	return nil
}

func systemctl(logger *slog.Logger, args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	logger.Debug("systemctl", "args", args)
	return nil
}
