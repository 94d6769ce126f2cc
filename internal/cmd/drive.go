package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tracktank/tankctl/drive"
	"github.com/tracktank/tankctl/internal/control"
	"github.com/tracktank/tankctl/internal/hw"
	"github.com/tracktank/tankctl/internal/link"
	"github.com/tracktank/tankctl/internal/log"
)

// PWM holds the duty settings shared by both tracks.
type PWM struct {
	Frequency   uint32 `help:"PWM frequency in Hz (L293 tops out around 5 kHz)" default:"5000" env:"TANKCTL_PWM_FREQUENCY"`
	MinSpinDuty uint32 `help:"Lowest duty value that still turns a track" default:"832" env:"TANKCTL_PWM_MIN_SPIN_DUTY"`
	MaxDuty     uint32 `help:"Full-scale duty value (e.g. 1024 or 65535)" default:"1024" env:"TANKCTL_PWM_MAX_DUTY"`
}

// Pins maps both tracks onto BCM GPIO numbers. Enable pins must be hardware
// PWM capable when the rpio backend drives them.
type Pins struct {
	LeftEnable    int `help:"Left track PWM enable pin" default:"12" env:"TANKCTL_PINS_LEFT_ENABLE"`
	LeftForward   int `help:"Left track forward channel pin" default:"5" env:"TANKCTL_PINS_LEFT_FORWARD"`
	LeftBackward  int `help:"Left track backward channel pin" default:"6" env:"TANKCTL_PINS_LEFT_BACKWARD"`
	RightEnable   int `help:"Right track PWM enable pin" default:"13" env:"TANKCTL_PINS_RIGHT_ENABLE"`
	RightForward  int `help:"Right track forward channel pin" default:"23" env:"TANKCTL_PINS_RIGHT_FORWARD"`
	RightBackward int `help:"Right track backward channel pin" default:"24" env:"TANKCTL_PINS_RIGHT_BACKWARD"`
}

// Drive runs the vehicle from the gamepad link.
type Drive struct {
	Link   link.Config `embed:"" prefix:"link."`
	GPIO   hw.Config   `embed:"" prefix:"gpio."`
	PWM    PWM         `embed:"" prefix:"pwm."`
	Pins   Pins        `embed:"" prefix:"pins."`
	DryRun bool        `help:"Log pin writes instead of touching GPIO" env:"TANKCTL_DRY_RUN"`
}

// Tracks returns the left and right track configuration.
func (c *Drive) Tracks() (left, right drive.TrackConfig) {
	left = drive.TrackConfig{
		EnablePin:   c.Pins.LeftEnable,
		ForwardPin:  c.Pins.LeftForward,
		BackwardPin: c.Pins.LeftBackward,
		Frequency:   c.PWM.Frequency,
		MinSpinDuty: c.PWM.MinSpinDuty,
		MaxDuty:     c.PWM.MaxDuty,
	}
	right = left
	right.EnablePin = c.Pins.RightEnable
	right.ForwardPin = c.Pins.RightForward
	right.BackwardPin = c.Pins.RightBackward
	return left, right
}

// Run is called by Kong when the drive command is executed.
func (c *Drive) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gpio := c.GPIO
	if c.DryRun {
		gpio.Backend = hw.BackendSim
	}
	pins, closer, err := hw.Open(gpio, c.PWM.MaxDuty, logger.With("component", "gpio"))
	if err != nil {
		return err
	}
	defer closer.Close()

	left, right := c.Tracks()
	tracks, err := drive.New(pins, left, right)
	if err != nil {
		return err
	}

	l, err := link.Open(ctx, c.Link, logger)
	if err != nil {
		return err
	}
	defer l.Close()

	// A blocked read only returns once the link is closed.
	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()

	logger.Info("Starting tankctl drive", "link", l.String(), "gpio", gpio.Backend, "max-duty", c.PWM.MaxDuty)
	return control.New(l, tracks, logger, rawLogger).Run(ctx)
}
