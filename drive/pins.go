package drive

// DigitalOut drives plain output pins.
type DigitalOut interface {
	SetLevel(pin int, high bool) error
}

// PWMOut drives PWM-capable pins. Duty values are in the backend's range,
// which must match the track's MaxDuty.
type PWMOut interface {
	InitPWM(pin int, freq uint32) error
	SetDuty(pin int, duty uint32) error
}

// Pins is everything a Track needs from the hardware.
type Pins interface {
	DigitalOut
	PWMOut
}
