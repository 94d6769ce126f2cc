package drive

import "errors"

var (
	ErrMaxDuty   = errors.New("max duty must be positive")
	ErrMinSpin   = errors.New("min spin duty exceeds max duty")
	ErrFrequency = errors.New("pwm frequency must be positive")
	ErrPinReused = errors.New("pin assigned twice")
	ErrNoPins    = errors.New("no pin backend")
)
