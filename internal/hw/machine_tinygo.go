//go:build tinygo

package hw

import (
	"errors"
	"machine"

	"github.com/sparques/pwm"
)

// Machine drives microcontroller pins through TinyGo's machine package.
// Duty values in [0, fullScale] are rescaled onto each PWM slice's Top().
type Machine struct {
	fullScale uint32
	outputs   map[int]bool
	channels  map[int]pwmChannel
}

type pwmChannel struct {
	group pwm.Group
	ch    uint8
}

func NewMachine(fullScale uint32) *Machine {
	return &Machine{
		fullScale: fullScale,
		outputs:   make(map[int]bool),
		channels:  make(map[int]pwmChannel),
	}
}

func (m *Machine) SetLevel(pin int, high bool) error {
	p := machine.Pin(pin)
	if !m.outputs[pin] {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		m.outputs[pin] = true
	}
	p.Set(high)
	return nil
}

func (m *Machine) InitPWM(pin int, freq uint32) error {
	if freq == 0 {
		return errors.New("zero pwm frequency")
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinPWM})
	group := pwm.Get(p)
	if err := group.Configure(machine.PWMConfig{Period: uint64(1e9) / uint64(freq)}); err != nil {
		return err
	}
	ch, err := group.Channel(p)
	if err != nil {
		return err
	}
	group.Set(ch, 0)
	m.channels[pin] = pwmChannel{group: group, ch: ch}
	return nil
}

func (m *Machine) SetDuty(pin int, duty uint32) error {
	c, ok := m.channels[pin]
	if !ok {
		return errors.New("pwm not initialised on pin")
	}
	top := uint64(c.group.Top())
	c.group.Set(c.ch, uint32(uint64(min(duty, m.fullScale))*top/uint64(m.fullScale)))
	return nil
}
