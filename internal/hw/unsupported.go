//go:build !linux && !tinygo

package hw

import "log/slog"

type unsupported struct{}

func (unsupported) SetLevel(int, bool) error { return ErrUnsupported }

func (unsupported) InitPWM(int, uint32) error { return ErrUnsupported }

func (unsupported) SetDuty(int, uint32) error { return ErrUnsupported }

func (unsupported) Close() error { return nil }

type (
	RPIO = unsupported
	Cdev = unsupported
)

func OpenRPIO(uint32, *slog.Logger) (*RPIO, error) { return nil, ErrUnsupported }

func OpenCdev(string, *slog.Logger) (*Cdev, error) { return nil, ErrUnsupported }
