//go:build linux && !tinygo

package hw

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/warthog618/go-gpiocdev"
)

// Cdev drives direction pins through the Linux GPIO character device.
// Lines are requested lazily on first use and held until Close.
type Cdev struct {
	chip   string
	logger *slog.Logger
	lines  map[int]*gpiocdev.Line
}

func OpenCdev(chip string, logger *slog.Logger) (*Cdev, error) {
	if chip == "" {
		return nil, errors.New("no gpio chip given")
	}
	return &Cdev{chip: chip, logger: logger, lines: make(map[int]*gpiocdev.Line)}, nil
}

func (c *Cdev) SetLevel(pin int, high bool) error {
	v := 0
	if high {
		v = 1
	}
	l, ok := c.lines[pin]
	if !ok {
		var err error
		l, err = gpiocdev.RequestLine(c.chip, pin, gpiocdev.AsOutput(v), gpiocdev.WithConsumer("tankctl"))
		if err != nil {
			return fmt.Errorf("request %s line %d: %w", c.chip, pin, err)
		}
		c.logger.Debug("gpio line requested", "chip", c.chip, "line", pin)
		c.lines[pin] = l
		return nil
	}
	return l.SetValue(v)
}

// Close releases every requested line.
func (c *Cdev) Close() error {
	var errs []error
	for pin, l := range c.lines {
		errs = append(errs, l.Close())
		delete(c.lines, pin)
	}
	return errors.Join(errs...)
}
