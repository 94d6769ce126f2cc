// Package dabble decodes the gamepad module of the Dabble Bluetooth app.
//
// Only the joystick-pad subset of the protocol is handled: 8-byte frames
// carrying a button mask and a polar joystick byte.
//
// Joystick byte layout:
//
//	bits 0-2: radius (0-7)
//	bits 3-7: direction in 15 degree steps, counter-clockwise from the right (0-23)
package dabble

const (
	RadiusMask    = 0b111
	DirectionMask = ^byte(RadiusMask)
	directionBits = 3

	MaxRadius = 7

	// Directions per full turn and per quarter turn.
	Directions        = 24
	QuarterDirections = 6

	DirRight = 0
	DirUp    = 6
	DirLeft  = 12
	DirDown  = 18
)

// Radius returns the joystick radius encoded in bits 0-2.
func Radius(joystick byte) int {
	return int(joystick & RadiusMask)
}

// Direction returns the joystick direction encoded in bits 3-7.
func Direction(joystick byte) int {
	return int((joystick & DirectionMask) >> directionBits)
}

// Joystick packs radius and direction back into a joystick byte.
// Out-of-range values are truncated to their field width.
func Joystick(radius, direction int) byte {
	return byte(direction<<directionBits)&DirectionMask | byte(radius)&RadiusMask
}
