//go:build tinygo

// Command tankfw is the microcontroller build of the track drive: an HC-05
// style Bluetooth module on UART1 feeds gamepad frames straight into the
// motor drivers.
package main

import (
	"machine"
	"time"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/drive"
	"github.com/tracktank/tankctl/internal/hw"
)

const (
	maxDuty     = 1024
	minSpinDuty = 832
	frequency   = 5000
)

var (
	left = drive.TrackConfig{
		EnablePin: int(machine.GP21), ForwardPin: int(machine.GP19), BackwardPin: int(machine.GP18),
		Frequency: frequency, MinSpinDuty: minSpinDuty, MaxDuty: maxDuty,
	}
	right = drive.TrackConfig{
		EnablePin: int(machine.GP20), ForwardPin: int(machine.GP17), BackwardPin: int(machine.GP16),
		Frequency: frequency, MinSpinDuty: minSpinDuty, MaxDuty: maxDuty,
	}
)

func main() {
	uart := machine.UART1
	if err := uart.Configure(machine.UARTConfig{BaudRate: 9600, TX: machine.GP8, RX: machine.GP9}); err != nil {
		halt("uart", err)
	}

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()

	tracks, err := drive.New(hw.NewMachine(maxDuty), left, right)
	if err != nil {
		halt("tracks", err)
	}

	framer := dabble.NewFramer()
	for {
		if uart.Buffered() == 0 {
			time.Sleep(time.Millisecond)
			continue
		}
		b, err := uart.ReadByte()
		if err != nil {
			continue
		}
		f, ok := framer.Push(b)
		if !ok {
			continue
		}
		if err := tracks.Apply(drive.Map(f.Reading())); err != nil {
			println("apply:", err.Error())
		}
	}
}

// halt reports err and blinks the LED forever.
func halt(what string, err error) {
	println(what+":", err.Error())
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.Set(!led.Get())
		time.Sleep(250 * time.Millisecond)
	}
}
