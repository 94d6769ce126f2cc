package dabble

import "errors"

var (
	ErrBadMagic      = errors.New("frame does not start with gamepad magic")
	ErrBadTerminator = errors.New("frame terminator is not 0x00")
)
