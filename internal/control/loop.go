// Package control runs the read-frame-decode-map-actuate cycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/drive"
	"github.com/tracktank/tankctl/internal/log"
)

// Actuator applies drive commands to hardware.
type Actuator interface {
	Apply(cmd drive.Command) error
	Coast() error
}

// Stats counts what the loop has seen so far.
type Stats struct {
	Bytes  uint64
	Frames uint64
	Errors uint64
}

// Loop is the vehicle's single thread of control. Each byte is fully
// handled before the next one is read.
type Loop struct {
	src    io.ByteReader
	act    Actuator
	framer *dabble.Framer
	logger *slog.Logger
	raw    log.RawLogger

	last  dabble.Reading
	stats Stats
}

// New builds a loop reading from src and driving act. raw may be nil.
func New(src io.ByteReader, act Actuator, logger *slog.Logger, raw log.RawLogger) *Loop {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Loop{
		src:    src,
		act:    act,
		framer: dabble.NewFramer(),
		logger: logger,
		raw:    raw,
	}
}

// Step processes one received byte. It reports the command applied when the
// byte completed a frame.
func (l *Loop) Step(b byte) (drive.Command, bool) {
	l.stats.Bytes++
	if l.logger.Enabled(context.Background(), log.LevelTrace) {
		l.logger.Log(context.Background(), log.LevelTrace, "rx", "byte", fmt.Sprintf("%#02x", b))
	}

	frame, ok := l.framer.Push(b)
	if !ok {
		return drive.Command{}, false
	}
	l.stats.Frames++
	l.raw.Log("frame", l.framer.Window().Bytes())

	reading := frame.Reading()
	cmd := drive.Map(reading)
	if reading != l.last {
		l.logger.Debug("gamepad",
			"buttons", reading.Buttons.String(),
			"radius", reading.Radius,
			"direction", reading.Direction,
			"left", cmd.Left.Signed(),
			"right", cmd.Right.Signed(),
			"brake", cmd.Brake)
		l.last = reading
	}

	if err := l.act.Apply(cmd); err != nil {
		l.stats.Errors++
		l.logger.Warn("actuate", "error", err)
	}
	return cmd, true
}

// Run reads until the source fails or ctx is done. Closing the source is the
// way to interrupt a blocked read. Both tracks are coasted on the way out.
// End of input (replayed captures) is not an error.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		if err := l.act.Coast(); err != nil {
			l.logger.Warn("coast on exit", "error", err)
		}
		l.logger.Info("control loop stopped", "bytes", l.stats.Bytes, "frames", l.stats.Frames, "errors", l.stats.Errors)
	}()

	for {
		b, err := l.src.ReadByte()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read link: %w", err)
		}
		l.Step(b)
	}
}

// Stats returns the counters collected so far.
func (l *Loop) Stats() Stats { return l.stats }
