// Package testing holds helpers shared by package tests.
package testing

import (
	"errors"
	"testing"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/internal/hw"
)

var ErrInjected = errors.New("injected pin failure")

// FailingPins wraps a Sim and fails every write to the pins in Fail.
type FailingPins struct {
	*hw.Sim
	Fail map[int]bool
}

func NewFailingPins(pins ...int) *FailingPins {
	f := &FailingPins{Sim: hw.NewSim(nil), Fail: make(map[int]bool)}
	for _, p := range pins {
		f.Fail[p] = true
	}
	return f
}

func (f *FailingPins) SetLevel(pin int, high bool) error {
	if f.Fail[pin] {
		return ErrInjected
	}
	return f.Sim.SetLevel(pin, high)
}

func (f *FailingPins) SetDuty(pin int, duty uint32) error {
	if f.Fail[pin] {
		return ErrInjected
	}
	return f.Sim.SetDuty(pin, duty)
}

// Stream concatenates encoded frames and raw noise bytes. Arguments may be
// dabble.Frame, []byte or byte.
func Stream(t *testing.T, parts ...any) []byte {
	t.Helper()
	var out []byte
	for _, p := range parts {
		switch v := p.(type) {
		case dabble.Frame:
			b, err := v.MarshalBinary()
			if err != nil {
				t.Fatalf("marshal frame: %v", err)
			}
			out = append(out, b...)
		case []byte:
			out = append(out, v...)
		case byte:
			out = append(out, v)
		default:
			t.Fatalf("unsupported stream part %T", p)
		}
	}
	return out
}

// Joy builds a frame with no buttons held.
func Joy(radius, direction int) dabble.Frame {
	return dabble.Frame{Joystick: dabble.Joystick(radius, direction)}
}
