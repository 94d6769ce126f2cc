//go:build linux && !tinygo

package hw

import (
	"fmt"
	"log/slog"

	"github.com/stianeikeland/go-rpio/v4"
)

// pwmClockMax is the highest PWM clock the BCM283x divider can produce from
// the 19.2 MHz oscillator.
const pwmClockMax = 9_600_000

// RPIO drives Raspberry Pi pins through /dev/gpiomem. Enable pins must be
// hardware PWM capable (GPIO 12, 13, 18 or 19).
type RPIO struct {
	fullScale uint32
	logger    *slog.Logger
	outputs   map[int]bool
}

// OpenRPIO maps the GPIO registers. fullScale becomes the PWM cycle length.
func OpenRPIO(fullScale uint32, logger *slog.Logger) (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open rpio: %w", err)
	}
	return &RPIO{fullScale: fullScale, logger: logger, outputs: make(map[int]bool)}, nil
}

func (r *RPIO) SetLevel(pin int, high bool) error {
	p := rpio.Pin(pin)
	if !r.outputs[pin] {
		p.Output()
		r.outputs[pin] = true
	}
	if high {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

func (r *RPIO) InitPWM(pin int, freq uint32) error {
	clock := int(freq) * int(r.fullScale)
	if clock > pwmClockMax {
		r.logger.Warn("pwm clock above divider range, frequency will be lower than requested",
			"pin", pin, "freq", freq, "cycle", r.fullScale)
		clock = pwmClockMax
	}
	p := rpio.Pin(pin)
	p.Mode(rpio.Pwm)
	p.Freq(clock)
	p.DutyCycle(0, r.fullScale)
	return nil
}

func (r *RPIO) SetDuty(pin int, duty uint32) error {
	rpio.Pin(pin).DutyCycle(min(duty, r.fullScale), r.fullScale)
	return nil
}

// Close unmaps the GPIO registers.
func (r *RPIO) Close() error {
	return rpio.Close()
}
