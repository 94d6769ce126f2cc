// Package config defines the CLI structure and configuration for tankctl.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/tracktank/tankctl/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"TANKCTL_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"TANKCTL_LOG_FILE"`
	RawFile string `help:"Raw frame log file path (default: none)" env:"TANKCTL_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config  string           `help:"Config file (json, yaml or toml)" env:"TANKCTL_CONFIG" type:"path"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Drive     cmd.Drive     `cmd:"" help:"Drive the tracks from the gamepad link"`
	Decode    cmd.Decode    `cmd:"" help:"Decode gamepad frames from a capture"`
	Table     cmd.Table     `cmd:"" help:"Print the steering table"`
	Install   cmd.Install   `cmd:"" help:"Run 'tankctl drive' on boot (systemd)"`
	Uninstall cmd.Uninstall `cmd:"" help:"Remove the boot service"`
}
