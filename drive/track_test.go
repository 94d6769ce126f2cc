package drive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/drive"
	"github.com/tracktank/tankctl/internal/hw"
	tankTesting "github.com/tracktank/tankctl/internal/testing"
)

var (
	leftCfg = drive.TrackConfig{
		EnablePin: 21, ForwardPin: 19, BackwardPin: 18,
		Frequency: 5000, MinSpinDuty: 832, MaxDuty: 1024,
	}
	rightCfg = drive.TrackConfig{
		EnablePin: 20, ForwardPin: 17, BackwardPin: 16,
		Frequency: 5000, MinSpinDuty: 832, MaxDuty: 1024,
	}
)

func newTrack(t *testing.T, cfg drive.TrackConfig) (*drive.Track, *hw.Sim) {
	t.Helper()
	sim := hw.NewSim(nil)
	tr, err := drive.NewTrack(sim, cfg)
	require.NoError(t, err)
	return tr, sim
}

func TestNewTrackInitialisesPins(t *testing.T) {
	tr, sim := newTrack(t, leftCfg)

	assert.Equal(t, uint32(5000), sim.Freq(21))
	assert.Equal(t, uint32(0), sim.Duty(21))
	assert.False(t, sim.Level(19))
	assert.False(t, sim.Level(18))
	assert.Equal(t, drive.StateIdle, tr.State())
	assert.Equal(t, leftCfg, tr.Config())
}

func TestNewTrackValidation(t *testing.T) {
	sim := hw.NewSim(nil)

	cfg := leftCfg
	cfg.MaxDuty = 0
	_, err := drive.NewTrack(sim, cfg)
	assert.ErrorIs(t, err, drive.ErrMaxDuty)

	cfg = leftCfg
	cfg.MinSpinDuty = 2000
	_, err = drive.NewTrack(sim, cfg)
	assert.ErrorIs(t, err, drive.ErrMinSpin)

	cfg = leftCfg
	cfg.Frequency = 0
	_, err = drive.NewTrack(sim, cfg)
	assert.ErrorIs(t, err, drive.ErrFrequency)

	cfg = leftCfg
	cfg.BackwardPin = cfg.ForwardPin
	_, err = drive.NewTrack(sim, cfg)
	assert.ErrorIs(t, err, drive.ErrPinReused)

	_, err = drive.NewTrack(nil, leftCfg)
	assert.ErrorIs(t, err, drive.ErrNoPins)
}

func TestSetPowerDuty(t *testing.T) {
	cases := []struct {
		name  string
		min   uint32
		max   uint32
		power float64
		want  uint32
	}{
		{"zero coasts", 832, 1024, 0, 0},
		{"full", 832, 1024, 100, 1024},
		{"half", 832, 1024, 50, 928},
		{"smallest step", 832, 1024, 1, 833},
		{"16 bit full", 0, 65535, 100, 65535},
		{"16 bit half", 0, 65535, 50, 32767},
		{"16 bit zero with floor", 20000, 65535, 0, 0},
		{"above range", 832, 1024, 150, 1024},
		{"below range", 832, 1024, -20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := leftCfg
			cfg.MinSpinDuty, cfg.MaxDuty = tc.min, tc.max
			tr, sim := newTrack(t, cfg)

			require.NoError(t, tr.SetPower(tc.power))
			assert.Equal(t, tc.want, sim.Duty(cfg.EnablePin))
			assert.Equal(t, tc.want, tr.Duty())
		})
	}
}

func TestSetPowerKeepsDirection(t *testing.T) {
	tr, sim := newTrack(t, leftCfg)
	require.NoError(t, tr.Backward())
	require.NoError(t, tr.SetPower(30))

	assert.False(t, sim.Level(19))
	assert.True(t, sim.Level(18))
	assert.Equal(t, drive.StateBackward, tr.State())
}

func TestForwardBackward(t *testing.T) {
	tr, sim := newTrack(t, leftCfg)

	require.NoError(t, tr.Forward())
	assert.True(t, sim.Level(19))
	assert.False(t, sim.Level(18))
	assert.Equal(t, uint32(0), sim.Duty(21), "forward without power leaves duty")
	assert.Equal(t, drive.StateIdle, tr.State())

	require.NoError(t, tr.Forward(40))
	assert.Equal(t, uint32(908), sim.Duty(21))
	assert.Equal(t, drive.StateForward, tr.State())
	assert.Equal(t, drive.Forward, tr.Rotation())

	require.NoError(t, tr.Backward(100))
	assert.False(t, sim.Level(19))
	assert.True(t, sim.Level(18))
	assert.Equal(t, uint32(1024), sim.Duty(21))
	assert.Equal(t, drive.StateBackward, tr.State())
}

func TestBrake(t *testing.T) {
	tr, sim := newTrack(t, leftCfg)
	require.NoError(t, tr.Forward(20))

	require.NoError(t, tr.Brake())
	assert.Equal(t, uint32(1024), sim.Duty(21))
	assert.False(t, sim.Level(19))
	assert.False(t, sim.Level(18))
	assert.Equal(t, drive.StateBraking, tr.State())

	require.NoError(t, tr.SetPower(0))
	assert.Equal(t, drive.StateIdle, tr.State())
}

func TestTrackPinErrors(t *testing.T) {
	pins := tankTesting.NewFailingPins()
	tr, err := drive.NewTrack(pins, leftCfg)
	require.NoError(t, err)

	pins.Fail[18] = true
	assert.ErrorIs(t, tr.Backward(50), tankTesting.ErrInjected)

	pins.Fail[21] = true
	assert.ErrorIs(t, tr.SetPower(50), tankTesting.ErrInjected)

	_, err = drive.NewTrack(tankTesting.NewFailingPins(19), rightCfg)
	assert.NoError(t, err, "right track does not use pin 19")
	_, err = drive.NewTrack(tankTesting.NewFailingPins(21), leftCfg)
	assert.ErrorIs(t, err, tankTesting.ErrInjected)
}

func TestDriveRejectsSharedPins(t *testing.T) {
	cfg := rightCfg
	cfg.BackwardPin = leftCfg.ForwardPin
	_, err := drive.New(hw.NewSim(nil), leftCfg, cfg)
	assert.ErrorIs(t, err, drive.ErrPinReused)
}

func newDrive(t *testing.T) (*drive.Drive, *hw.Sim) {
	t.Helper()
	sim := hw.NewSim(nil)
	d, err := drive.New(sim, leftCfg, rightCfg)
	require.NoError(t, err)
	return d, sim
}

func TestApplyPivot(t *testing.T) {
	d, sim := newDrive(t)

	require.NoError(t, d.Apply(drive.Map(dabble.Reading{Radius: 7, Direction: dabble.DirRight})))
	assert.True(t, sim.Level(19), "left forward")
	assert.False(t, sim.Level(18))
	assert.False(t, sim.Level(17))
	assert.True(t, sim.Level(16), "right backward")
	assert.Equal(t, uint32(1024), sim.Duty(21))
	assert.Equal(t, uint32(1024), sim.Duty(20))
}

func TestApplyBrakeWins(t *testing.T) {
	d, sim := newDrive(t)

	cmd := drive.Map(dabble.Reading{Buttons: dabble.ButtonSquare, Radius: 2, Direction: dabble.DirUp})
	require.NoError(t, d.Apply(cmd))

	for _, pin := range []int{19, 18, 17, 16} {
		assert.False(t, sim.Level(pin), "pin %d", pin)
	}
	assert.Equal(t, uint32(1024), sim.Duty(21))
	assert.Equal(t, uint32(1024), sim.Duty(20))
	assert.Equal(t, drive.StateBraking, d.Left.State())
	assert.Equal(t, drive.StateBraking, d.Right.State())
}

func TestApplyCentredStick(t *testing.T) {
	d, sim := newDrive(t)
	require.NoError(t, d.Apply(drive.Map(dabble.Reading{Radius: 7, Direction: dabble.DirDown})))
	require.NoError(t, d.Apply(drive.Map(dabble.Reading{Radius: 0, Direction: dabble.DirUp})))

	assert.True(t, sim.Level(18), "direction pins untouched")
	assert.True(t, sim.Level(16))
	assert.Equal(t, uint32(0), sim.Duty(21))
	assert.Equal(t, uint32(0), sim.Duty(20))
	assert.Equal(t, drive.StateIdle, d.Left.State())
}

func TestCoast(t *testing.T) {
	d, sim := newDrive(t)
	require.NoError(t, d.Apply(drive.Map(dabble.Reading{Radius: 7, Direction: dabble.DirUp})))
	require.NoError(t, d.Coast())
	assert.Equal(t, uint32(0), sim.Duty(21))
	assert.Equal(t, uint32(0), sim.Duty(20))
	assert.True(t, sim.Level(19))
}
