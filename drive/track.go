package drive

import "fmt"

// TrackConfig wires one track to its motor driver channels.
type TrackConfig struct {
	EnablePin   int
	ForwardPin  int
	BackwardPin int
	Frequency   uint32
	MinSpinDuty uint32
	MaxDuty     uint32
}

func (c TrackConfig) validate() error {
	if c.MaxDuty == 0 {
		return ErrMaxDuty
	}
	if c.MinSpinDuty > c.MaxDuty {
		return fmt.Errorf("%w: %d > %d", ErrMinSpin, c.MinSpinDuty, c.MaxDuty)
	}
	if c.Frequency == 0 {
		return ErrFrequency
	}
	if c.EnablePin == c.ForwardPin || c.EnablePin == c.BackwardPin || c.ForwardPin == c.BackwardPin {
		return fmt.Errorf("%w: enable=%d forward=%d backward=%d", ErrPinReused, c.EnablePin, c.ForwardPin, c.BackwardPin)
	}
	return nil
}

func (c TrackConfig) pins() []int {
	return []int{c.EnablePin, c.ForwardPin, c.BackwardPin}
}

// State is the observable state of a track.
type State int

const (
	StateIdle State = iota
	StateForward
	StateBackward
	StateBraking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateForward:
		return "forward"
	case StateBackward:
		return "backward"
	case StateBraking:
		return "braking"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Track controls one track through a pair of H-bridge channels and a PWM
// enable pin.
//
// Power is a percentage. Zero coasts the motor; anything above zero is
// scaled onto [MinSpinDuty, MaxDuty] so the motor always gets enough duty to
// overcome static friction.
type Track struct {
	cfg  TrackConfig
	pins Pins

	rotation Rotation
	duty     uint32
	braking  bool
}

// NewTrack initialises the PWM pin at zero duty and both direction pins low.
func NewTrack(pins Pins, cfg TrackConfig) (*Track, error) {
	if pins == nil {
		return nil, ErrNoPins
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Track{cfg: cfg, pins: pins}
	if err := pins.InitPWM(cfg.EnablePin, cfg.Frequency); err != nil {
		return nil, fmt.Errorf("init pwm on pin %d: %w", cfg.EnablePin, err)
	}
	if err := t.setDuty(0); err != nil {
		return nil, err
	}
	if err := t.setDirection(false, false); err != nil {
		return nil, err
	}
	return t, nil
}

// Config returns the configuration the track was built with.
func (t *Track) Config() TrackConfig { return t.cfg }

// Duty returns the last duty value written to the enable pin.
func (t *Track) Duty() uint32 { return t.duty }

// Rotation returns the direction pin pattern last applied.
func (t *Track) Rotation() Rotation { return t.rotation }

// State reports the current state. A track with power but no direction
// pattern applied is idle: both driver inputs are low.
func (t *Track) State() State {
	switch {
	case t.braking:
		return StateBraking
	case t.duty == 0:
		return StateIdle
	case t.rotation == Forward:
		return StateForward
	case t.rotation == Backward:
		return StateBackward
	default:
		return StateIdle
	}
}

// DutyFor converts a power percentage to a duty value. Power outside
// [0, 100] is clamped.
func (t *Track) DutyFor(power float64) uint32 {
	power = clamp(power, 0, 100)
	if power == 0 {
		return 0
	}
	return lerp(power/100, t.cfg.MinSpinDuty, t.cfg.MaxDuty)
}

// SetPower changes the duty only; the direction pins are left alone.
func (t *Track) SetPower(power float64) error {
	if err := t.setDuty(t.DutyFor(power)); err != nil {
		return err
	}
	t.braking = false
	return nil
}

// Forward sets the forward pin pattern and, when given, the power.
func (t *Track) Forward(power ...float64) error {
	if err := t.setDirection(true, false); err != nil {
		return err
	}
	t.rotation = Forward
	t.braking = false
	return t.optionalPower(power)
}

// Backward sets the backward pin pattern and, when given, the power.
func (t *Track) Backward(power ...float64) error {
	if err := t.setDirection(false, true); err != nil {
		return err
	}
	t.rotation = Backward
	t.braking = false
	return t.optionalPower(power)
}

// Brake drives the enable pin at full power with both direction pins low.
// The track reports StateBraking until the next power or direction change.
func (t *Track) Brake() error {
	if err := t.SetPower(100); err != nil {
		return err
	}
	if err := t.setDirection(false, false); err != nil {
		return err
	}
	t.rotation = Hold
	t.braking = true
	return nil
}

func (t *Track) optionalPower(power []float64) error {
	if len(power) == 0 {
		return nil
	}
	return t.SetPower(power[0])
}

func (t *Track) setDuty(duty uint32) error {
	if err := t.pins.SetDuty(t.cfg.EnablePin, duty); err != nil {
		return fmt.Errorf("set duty on pin %d: %w", t.cfg.EnablePin, err)
	}
	t.duty = duty
	return nil
}

func (t *Track) setDirection(forward, backward bool) error {
	if err := t.pins.SetLevel(t.cfg.ForwardPin, forward); err != nil {
		return fmt.Errorf("set pin %d: %w", t.cfg.ForwardPin, err)
	}
	if err := t.pins.SetLevel(t.cfg.BackwardPin, backward); err != nil {
		return fmt.Errorf("set pin %d: %w", t.cfg.BackwardPin, err)
	}
	return nil
}
