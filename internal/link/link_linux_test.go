//go:build linux

package link_test

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/tracktank/tankctl/internal/link"
)

// openPTY returns the master side of a new pseudo terminal and the path of
// its slave, which stands in for a serial device.
func openPTY(t *testing.T) (*os.File, string) {
	t.Helper()
	m, err := os.OpenFile("/dev/ptmx", os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		t.Skipf("no pty support: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })

	fd := int(m.Fd())
	require.NoError(t, unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0))
	n, err := unix.IoctlGetInt(fd, unix.TIOCGPTN)
	require.NoError(t, err)
	return m, fmt.Sprintf("/dev/pts/%d", n)
}

func TestSerialReadsAcrossPolls(t *testing.T) {
	m, slave := openPTY(t)

	l, err := link.Open(context.Background(), link.Config{Kind: link.KindSerial, Address: slave, Baud: 9600}, discard())
	require.NoError(t, err)
	defer l.Close()

	go func() {
		time.Sleep(3 * link.SerialPollInterval)
		_, _ = m.Write([]byte{0xFF, 0x01})
	}()

	b, err := l.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b)
	b, err = l.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
}

func TestCloseUnblocksSerial(t *testing.T) {
	_, slave := openPTY(t)

	l, err := link.Open(context.Background(), link.Config{Kind: link.KindSerial, Address: slave, Baud: 9600}, discard())
	require.NoError(t, err)

	requireUnblocks(t, l)
}
