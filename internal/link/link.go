// Package link opens the byte stream coming from the Bluetooth module.
package link

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/tarm/serial"
)

const (
	KindSerial = "serial"
	KindTCP    = "tcp"
	KindFile   = "file"
)

// SerialPollInterval bounds how long a serial read blocks before the link
// checks whether it was closed.
const SerialPollInterval = 200 * time.Millisecond

var (
	ErrNoAddress = errors.New("link address is empty")
	ErrClosed    = errors.New("link closed")
	// ErrHangup is returned when the far end of a stream link goes away.
	ErrHangup = errors.New("link hung up")
)

// Config describes where gamepad bytes come from.
type Config struct {
	Kind        string        `help:"Link type: serial, tcp (e.g. ser2net) or file (capture replay, '-' for stdin)" default:"serial" enum:"serial,tcp,file" env:"TANKCTL_LINK_KIND"`
	Address     string        `help:"Serial device, host:port or file path" default:"/dev/serial0" env:"TANKCTL_LINK_ADDRESS"`
	Baud        int           `help:"Serial baud rate" default:"9600" env:"TANKCTL_LINK_BAUD"`
	DialTimeout time.Duration `help:"TCP dial timeout" default:"5s" env:"TANKCTL_LINK_DIAL_TIMEOUT"`
}

// Link is an open byte stream. ReadByte blocks until a byte arrives or the
// link is closed; there is no read timeout. io.EOF is only reported by file
// links, a dropped stream link reports ErrHangup.
type Link struct {
	r      *bufio.Reader
	c      io.Closer
	name   string
	closed atomic.Bool
}

func (l *Link) ReadByte() (byte, error) { return l.r.ReadByte() }

// Close releases the underlying device. A blocked ReadByte returns ErrClosed.
// Closing twice is a no-op.
func (l *Link) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.c.Close()
}

func (l *Link) String() string { return l.name }

// Open opens the configured link.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Link, error) {
	if cfg.Address == "" {
		return nil, ErrNoAddress
	}
	var (
		rc  io.ReadCloser
		err error
	)
	switch cfg.Kind {
	case KindSerial:
		rc, err = serial.OpenPort(&serial.Config{
			Name:        cfg.Address,
			Baud:        cfg.Baud,
			Size:        8,
			Parity:      serial.ParityNone,
			StopBits:    serial.Stop1,
			ReadTimeout: SerialPollInterval,
		})
	case KindTCP:
		d := &net.Dialer{Timeout: cfg.DialTimeout}
		rc, err = d.DialContext(ctx, "tcp", cfg.Address)
	case KindFile:
		if cfg.Address == "-" {
			rc = os.Stdin
		} else {
			rc, err = os.Open(cfg.Address)
		}
	default:
		return nil, fmt.Errorf("unknown link kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s link %s: %w", cfg.Kind, cfg.Address, err)
	}
	logger.Info("link open", "kind", cfg.Kind, "address", cfg.Address)
	return newLink(rc, cfg.Kind, cfg.Kind+":"+cfg.Address), nil
}

// New wraps an already open stream that ends with io.EOF.
func New(rc io.ReadCloser, name string) *Link {
	return newLink(rc, KindFile, name)
}

func newLink(rc io.ReadCloser, kind, name string) *Link {
	l := &Link{c: rc, name: name}
	l.r = bufio.NewReaderSize(&source{l: l, r: rc, kind: kind}, 64)
	return l
}

// source adapts the raw stream to the link's read contract.
type source struct {
	l    *Link
	r    io.Reader
	kind string
}

func (s *source) Read(b []byte) (int, error) {
	for {
		n, err := s.r.Read(b)
		switch {
		case s.l.closed.Load():
			return 0, ErrClosed
		case n > 0:
			return n, nil
		case err == nil:
			continue
		case !errors.Is(err, io.EOF):
			return 0, err
		}

		switch s.kind {
		case KindSerial:
			// read timed out
			continue
		case KindTCP:
			return 0, ErrHangup
		default:
			return 0, io.EOF
		}
	}
}
