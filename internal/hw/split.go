// Package hw provides pin backends for the track motor drivers.
package hw

import (
	"errors"
	"io"

	"github.com/tracktank/tankctl/drive"
)

var ErrUnsupported = errors.New("gpio backend not supported on this platform")

// Split serves direction pins and PWM pins from different backends.
type Split struct {
	drive.DigitalOut
	drive.PWMOut
}

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, cl := range c {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}
