package dabble

import (
	"bytes"
	"io"
)

// Magic opens every gamepad frame.
var Magic = [MagicSize]byte{0xFF, 0x01, 0x02, 0x01, 0x02}

const (
	MagicSize = 5
	FrameSize = 8

	ButtonsOff    = 5
	JoystickOff   = 6
	TerminatorOff = 7

	Terminator = 0x00
)

// Frame is one gamepad frame as sent by the app.
//
// Wire format: fixed 8 bytes, no length or checksum field.
//
//	0-4: magic FF 01 02 01 02
//	  5: button mask
//	  6: joystick byte
//	  7: terminator 0x00
type Frame struct {
	Buttons  Buttons
	Joystick byte
}

// MarshalBinary encodes the frame to its 8-byte wire form.
func (f Frame) MarshalBinary() ([]byte, error) {
	b := make([]byte, FrameSize)
	copy(b, Magic[:])
	b[ButtonsOff] = byte(f.Buttons)
	b[JoystickOff] = f.Joystick
	b[TerminatorOff] = Terminator
	return b, nil
}

// UnmarshalBinary decodes a frame from the first 8 bytes of data.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < FrameSize {
		return io.ErrUnexpectedEOF
	}
	if !bytes.Equal(data[:MagicSize], Magic[:]) {
		return ErrBadMagic
	}
	if data[TerminatorOff] != Terminator {
		return ErrBadTerminator
	}
	f.Buttons = Buttons(data[ButtonsOff])
	f.Joystick = data[JoystickOff]
	return nil
}

// Reading decodes the frame payload.
func (f Frame) Reading() Reading {
	return Decode(byte(f.Buttons), f.Joystick)
}
