package drive

import (
	"errors"
	"fmt"
)

// Drive is the left/right track pair of a differential-drive vehicle.
type Drive struct {
	Left  *Track
	Right *Track
}

// New builds both tracks on the same pin backend. The two tracks must not
// share any pin.
func New(pins Pins, left, right TrackConfig) (*Drive, error) {
	seen := map[int]string{}
	for side, cfg := range map[string]TrackConfig{"left": left, "right": right} {
		for _, p := range cfg.pins() {
			if other, ok := seen[p]; ok && other != side {
				return nil, fmt.Errorf("%w: pin %d used by both tracks", ErrPinReused, p)
			}
			seen[p] = side
		}
	}

	l, err := NewTrack(pins, left)
	if err != nil {
		return nil, fmt.Errorf("left track: %w", err)
	}
	r, err := NewTrack(pins, right)
	if err != nil {
		return nil, fmt.Errorf("right track: %w", err)
	}
	return &Drive{Left: l, Right: r}, nil
}

// Apply actuates one control cycle: direction pins first, then power, then
// the brake, which overrides whatever the stick asked for.
func (d *Drive) Apply(cmd Command) error {
	if err := applyTrack(d.Left, cmd.Left); err != nil {
		return fmt.Errorf("left track: %w", err)
	}
	if err := applyTrack(d.Right, cmd.Right); err != nil {
		return fmt.Errorf("right track: %w", err)
	}
	if cmd.Brake {
		return d.Brake()
	}
	return nil
}

// Brake brakes both tracks.
func (d *Drive) Brake() error {
	return errors.Join(d.Left.Brake(), d.Right.Brake())
}

// Coast cuts power to both tracks without touching the direction pins.
func (d *Drive) Coast() error {
	return errors.Join(d.Left.SetPower(0), d.Right.SetPower(0))
}

func applyTrack(t *Track, c TrackCommand) error {
	switch c.Rotation {
	case Forward:
		return t.Forward(c.Power)
	case Backward:
		return t.Backward(c.Power)
	default:
		return t.SetPower(c.Power)
	}
}
