//go:build !tinygo

package hw

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tracktank/tankctl/drive"
)

const (
	BackendRPIO = "rpio"
	BackendCdev = "cdev"
	BackendSim  = "sim"
)

// Config selects and configures a pin backend.
type Config struct {
	Backend string `help:"GPIO backend: rpio (PWM + direction via /dev/gpiomem), cdev (direction via GPIO character device, PWM via rpio) or sim" default:"rpio" enum:"rpio,cdev,sim" env:"TANKCTL_GPIO_BACKEND"`
	Chip    string `help:"GPIO character device used by the cdev backend" default:"gpiochip0" env:"TANKCTL_GPIO_CHIP"`
}

// Open returns the configured backend. fullScale is the duty value that
// means 100 % on the PWM pins; it must match the tracks' MaxDuty.
func Open(cfg Config, fullScale uint32, logger *slog.Logger) (drive.Pins, io.Closer, error) {
	switch cfg.Backend {
	case BackendSim:
		return NewSim(logger), closers{}, nil
	case BackendRPIO:
		p, err := OpenRPIO(fullScale, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case BackendCdev:
		pwm, err := OpenRPIO(fullScale, logger)
		if err != nil {
			return nil, nil, err
		}
		dig, err := OpenCdev(cfg.Chip, logger)
		if err != nil {
			_ = pwm.Close()
			return nil, nil, err
		}
		return Split{DigitalOut: dig, PWMOut: pwm}, closers{dig, pwm}, nil
	default:
		return nil, nil, fmt.Errorf("unknown gpio backend %q", cfg.Backend)
	}
}
