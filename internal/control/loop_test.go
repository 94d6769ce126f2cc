package control_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/drive"
	"github.com/tracktank/tankctl/internal/control"
	"github.com/tracktank/tankctl/internal/hw"
	"github.com/tracktank/tankctl/internal/link"
	"github.com/tracktank/tankctl/internal/log"
	tankTesting "github.com/tracktank/tankctl/internal/testing"
)

var (
	leftCfg  = drive.TrackConfig{EnablePin: 21, ForwardPin: 19, BackwardPin: 18, Frequency: 5000, MinSpinDuty: 832, MaxDuty: 1024}
	rightCfg = drive.TrackConfig{EnablePin: 20, ForwardPin: 17, BackwardPin: 16, Frequency: 5000, MinSpinDuty: 832, MaxDuty: 1024}
)

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newLoop(t *testing.T, pins drive.Pins, stream []byte) (*control.Loop, *drive.Drive) {
	t.Helper()
	d, err := drive.New(pins, leftCfg, rightCfg)
	require.NoError(t, err)
	return control.New(bytes.NewReader(stream), d, discard(), nil), d
}

func TestStepReportsFrames(t *testing.T) {
	sim := hw.NewSim(nil)
	stream := tankTesting.Stream(t, []byte{0x13, 0x00, 0xFF}, tankTesting.Joy(7, dabble.DirUp))
	loop, _ := newLoop(t, sim, nil)

	var cmds []drive.Command
	for _, b := range stream {
		if cmd, ok := loop.Step(b); ok {
			cmds = append(cmds, cmd)
		}
	}
	require.Len(t, cmds, 1)
	assert.Equal(t, 100.0, cmds[0].Left.Signed())
	assert.Equal(t, 100.0, cmds[0].Right.Signed())
	assert.Equal(t, uint32(1024), sim.Duty(21))
	assert.True(t, sim.Level(19))
	assert.True(t, sim.Level(17))

	st := loop.Stats()
	assert.Equal(t, uint64(len(stream)), st.Bytes)
	assert.Equal(t, uint64(1), st.Frames)
	assert.Zero(t, st.Errors)
}

func TestRunReplaysStream(t *testing.T) {
	sim := hw.NewSim(nil)
	stream := tankTesting.Stream(t,
		tankTesting.Joy(7, dabble.DirRight),
		[]byte{0x00, 0x00, 0x07},
		tankTesting.Joy(7, dabble.DirLeft),
	)
	loop, d := newLoop(t, sim, stream)

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, uint64(2), loop.Stats().Frames)

	// Pivot-left pattern from the last frame, then coasted on exit.
	assert.Equal(t, drive.Backward, d.Left.Rotation())
	assert.Equal(t, drive.Forward, d.Right.Rotation())
	assert.Equal(t, uint32(0), sim.Duty(21))
	assert.Equal(t, uint32(0), sim.Duty(20))
}

func TestBrakeOverridesStick(t *testing.T) {
	sim := hw.NewSim(nil)
	stream := tankTesting.Stream(t, dabble.Frame{Buttons: dabble.ButtonSquare, Joystick: dabble.Joystick(7, dabble.DirUp)})
	loop, d := newLoop(t, sim, nil)

	for _, b := range stream {
		loop.Step(b)
	}
	assert.Equal(t, drive.StateBraking, d.Left.State())
	assert.Equal(t, drive.StateBraking, d.Right.State())
	assert.Equal(t, uint32(1024), sim.Duty(21))
	assert.Equal(t, uint32(1024), sim.Duty(20))
	for _, pin := range []int{19, 18, 17, 16} {
		assert.False(t, sim.Level(pin))
	}
}

func TestGarbageIsSilent(t *testing.T) {
	sim := hw.NewSim(nil)
	loop, _ := newLoop(t, sim, []byte{0xFF, 0x01, 0x02, 0x01, 0x02, 0x00, 0x37, 0x01, 0x00, 0x00})
	writes := sim.Writes()

	require.NoError(t, loop.Run(context.Background()))
	assert.Zero(t, loop.Stats().Frames)
	// Only the coast on exit touched the pins.
	assert.Equal(t, writes+2, sim.Writes())
}

func TestActuationErrorsAreLogged(t *testing.T) {
	pins := tankTesting.NewFailingPins()
	stream := tankTesting.Stream(t, tankTesting.Joy(7, dabble.DirUp), tankTesting.Joy(7, dabble.DirUp))
	loop, _ := newLoop(t, pins, stream)
	pins.Fail[19] = true

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, uint64(2), loop.Stats().Frames)
	assert.Equal(t, uint64(2), loop.Stats().Errors)
}

type failingReader struct{ err error }

func (f failingReader) ReadByte() (byte, error) { return 0, f.err }

func TestRunReadError(t *testing.T) {
	d, err := drive.New(hw.NewSim(nil), leftCfg, rightCfg)
	require.NoError(t, err)

	boom := errors.New("uart gone")
	loop := control.New(failingReader{boom}, d, discard(), nil)
	assert.ErrorIs(t, loop.Run(context.Background()), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop = control.New(failingReader{io.ErrClosedPipe}, d, discard(), nil)
	assert.NoError(t, loop.Run(ctx), "closing the link after cancel is a clean stop")
}

func TestRunHangupIsAnError(t *testing.T) {
	d, err := drive.New(hw.NewSim(nil), leftCfg, rightCfg)
	require.NoError(t, err)

	loop := control.New(failingReader{link.ErrHangup}, d, discard(), nil)
	err = loop.Run(context.Background())
	assert.ErrorIs(t, err, link.ErrHangup)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestRawFrames(t *testing.T) {
	var raw bytes.Buffer
	d, err := drive.New(hw.NewSim(nil), leftCfg, rightCfg)
	require.NoError(t, err)

	stream := tankTesting.Stream(t, tankTesting.Joy(3, 9))
	loop := control.New(bytes.NewReader(stream), d, discard(), log.NewRaw(&raw))
	require.NoError(t, loop.Run(context.Background()))

	assert.Contains(t, raw.String(), "ff 01 02 01 02 00 4b 00")
}
