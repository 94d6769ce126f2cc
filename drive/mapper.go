// Package drive turns gamepad readings into track commands and drives a pair
// of L293-style track motors.
package drive

import (
	"fmt"

	"github.com/tracktank/tankctl/device/dabble"
)

// Rotation is the direction a track is turned.
type Rotation int

const (
	// Hold leaves the direction pins as they are.
	Hold Rotation = iota
	Forward
	Backward
)

func (r Rotation) String() string {
	switch r {
	case Hold:
		return "hold"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("rotation(%d)", int(r))
	}
}

func (r Rotation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// TrackCommand is the rotation and power (0-100 %) for one track.
type TrackCommand struct {
	Rotation Rotation
	Power    float64
}

// Signed returns the power as -100..100, negative when turning backward.
func (c TrackCommand) Signed() float64 {
	if c.Rotation == Backward {
		return -c.Power
	}
	return c.Power
}

// Command is one control cycle worth of output for both tracks.
type Command struct {
	Left  TrackCommand
	Right TrackCommand
	Brake bool
}

// BrakeButton stops both tracks whenever it is held.
const BrakeButton = dabble.ButtonSquare

// Segment maps an inclusive direction range of one track to a rotation and
// a linear power ramp: power = 100 * (Intercept + Slope*direction) / QuarterDirections.
type Segment struct {
	Lo, Hi    int
	Rotation  Rotation
	Slope     int
	Intercept int
}

func (s Segment) contains(direction int) bool {
	return direction >= s.Lo && direction <= s.Hi
}

func (s Segment) power(direction int) float64 {
	return 100 * float64(s.Intercept+s.Slope*direction) / dabble.QuarterDirections
}

const maxDirection = int(dabble.DirectionMask >> 3)

// Steering tables, evaluated in order; the first matching segment wins.
// Full power is Intercept == QuarterDirections with zero slope.
var (
	LeftSegments = []Segment{
		{Lo: dabble.DirUp, Hi: dabble.DirLeft - 1, Rotation: Forward, Slope: -1, Intercept: dabble.DirLeft},
		{Lo: dabble.DirLeft + 1, Hi: dabble.DirDown, Rotation: Backward, Slope: 1, Intercept: -dabble.DirLeft},
		{Lo: dabble.DirLeft, Hi: dabble.DirLeft, Rotation: Backward, Intercept: dabble.QuarterDirections},
		{Lo: dabble.DirRight, Hi: dabble.DirUp - 1, Rotation: Forward, Intercept: dabble.QuarterDirections},
		{Lo: dabble.DirDown + 1, Hi: maxDirection, Rotation: Backward, Intercept: dabble.QuarterDirections},
	}
	RightSegments = []Segment{
		{Lo: dabble.DirRight + 1, Hi: dabble.DirUp, Rotation: Forward, Slope: 1},
		{Lo: dabble.DirDown, Hi: maxDirection, Rotation: Backward, Slope: -1, Intercept: dabble.Directions},
		{Lo: dabble.DirRight, Hi: dabble.DirRight, Rotation: Backward, Intercept: dabble.QuarterDirections},
		{Lo: dabble.DirUp + 1, Hi: dabble.DirLeft, Rotation: Forward, Intercept: dabble.QuarterDirections},
		{Lo: dabble.DirLeft + 1, Hi: dabble.DirDown - 1, Rotation: Backward, Intercept: dabble.QuarterDirections},
	}
)

func lookup(segments []Segment, direction int) TrackCommand {
	for _, s := range segments {
		if s.contains(direction) {
			return TrackCommand{Rotation: s.Rotation, Power: clamp(s.power(direction), 0, 100)}
		}
	}
	return TrackCommand{}
}

// Map converts a gamepad reading to track commands. The stick radius scales
// overall speed; the direction splits it between the tracks, giving straight,
// arc and pivot turns.
func Map(r dabble.Reading) Command {
	cmd := Command{Brake: r.Buttons.Has(BrakeButton)}
	if r.Radius == 0 {
		return cmd
	}

	mul := float64(r.Radius) / dabble.MaxRadius
	cmd.Left = lookup(LeftSegments, r.Direction)
	cmd.Right = lookup(RightSegments, r.Direction)
	cmd.Left.Power *= mul
	cmd.Right.Power *= mul
	return cmd
}
