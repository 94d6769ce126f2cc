package dabble

import "strings"

// Buttons is the gamepad button bitmask. Several buttons may be held at once.
type Buttons uint8

const (
	ButtonStart    Buttons = 0x01
	ButtonSelect   Buttons = 0x02
	ButtonTriangle Buttons = 0x04
	ButtonCircle   Buttons = 0x08
	ButtonCross    Buttons = 0x10
	ButtonSquare   Buttons = 0x20
)

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{ButtonStart, "start"},
	{ButtonSelect, "select"},
	{ButtonTriangle, "triangle"},
	{ButtonCircle, "circle"},
	{ButtonCross, "cross"},
	{ButtonSquare, "square"},
}

// Has reports whether every button in mask is held.
func (b Buttons) Has(mask Buttons) bool {
	return mask != 0 && b&mask == mask
}

// String lists the held buttons joined by "+", or "none".
func (b Buttons) String() string {
	var names []string
	for _, bn := range buttonNames {
		if b.Has(bn.b) {
			names = append(names, bn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
