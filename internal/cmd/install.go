package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Install sets up tankctl drive to start on boot.
type Install struct {
	Unit string `help:"systemd unit path" default:"/etc/systemd/system/tankctl.service"`
	Args string `help:"Extra arguments appended to 'tankctl drive'" default:""`
}

// Uninstall removes the tankctl startup configuration.
type Uninstall struct {
	Unit string `help:"systemd unit path" default:"/etc/systemd/system/tankctl.service"`
}

func (c *Install) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}

	if strings.Contains(exe, "go-build") {
		return errors.New("cannot install from 'go run'")
	}

	return install(logger, exe, c.Unit, c.Args)
}

func (c *Uninstall) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}

	if strings.Contains(exe, "go-build") {
		return errors.New("cannot uninstall from 'go run'")
	}

	return uninstall(logger, c.Unit)
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	return filepath.Abs(exe)
}
