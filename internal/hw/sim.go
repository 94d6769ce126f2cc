package hw

import (
	"log/slog"
	"maps"
)

// Sim is an in-memory pin backend. It remembers the last value written to
// every pin and logs each write at debug level.
type Sim struct {
	logger *slog.Logger
	levels map[int]bool
	duties map[int]uint32
	freqs  map[int]uint32
	writes int
}

// NewSim returns an empty Sim. logger may be nil.
func NewSim(logger *slog.Logger) *Sim {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sim{
		logger: logger,
		levels: make(map[int]bool),
		duties: make(map[int]uint32),
		freqs:  make(map[int]uint32),
	}
}

func (s *Sim) SetLevel(pin int, high bool) error {
	s.levels[pin] = high
	s.writes++
	s.logger.Debug("pin level", "pin", pin, "high", high)
	return nil
}

func (s *Sim) InitPWM(pin int, freq uint32) error {
	s.freqs[pin] = freq
	s.logger.Debug("pwm init", "pin", pin, "freq", freq)
	return nil
}

func (s *Sim) SetDuty(pin int, duty uint32) error {
	s.duties[pin] = duty
	s.writes++
	s.logger.Debug("pwm duty", "pin", pin, "duty", duty)
	return nil
}

// Level returns the last level written to pin.
func (s *Sim) Level(pin int) bool { return s.levels[pin] }

// Duty returns the last duty written to pin.
func (s *Sim) Duty(pin int) uint32 { return s.duties[pin] }

// Freq returns the PWM frequency pin was initialised with, 0 if never.
func (s *Sim) Freq(pin int) uint32 { return s.freqs[pin] }

// Writes counts level and duty writes.
func (s *Sim) Writes() int { return s.writes }

// Duties returns a copy of all duty values.
func (s *Sim) Duties() map[int]uint32 { return maps.Clone(s.duties) }
