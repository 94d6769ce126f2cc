package dabble

// Reading is a decoded gamepad frame.
type Reading struct {
	Buttons   Buttons
	Radius    int
	Direction int
}

// Decode builds a Reading from the button and joystick bytes of a frame.
// Every byte pair is a legal reading.
func Decode(buttons, joystick byte) Reading {
	return Reading{
		Buttons:   Buttons(buttons),
		Radius:    Radius(joystick),
		Direction: Direction(joystick),
	}
}

// HasDirection reports whether Direction carries meaning. The app leaves the
// direction bits undefined while the stick is centred.
func (r Reading) HasDirection() bool {
	return r.Radius > 0
}

// Degrees returns the stick angle counter-clockwise from the right.
func (r Reading) Degrees() int {
	return r.Direction * 360 / Directions
}
