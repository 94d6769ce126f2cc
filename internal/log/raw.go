package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger dumps raw link bytes, one line per frame.
type RawLogger interface {
	Log(tag string, data []byte)
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewRaw returns a RawLogger writing to w. A nil writer discards everything.
func NewRaw(w io.Writer) RawLogger {
	if w == nil {
		return nopRaw{}
	}
	return &rawLogger{w: w}
}

func (l *rawLogger) Log(tag string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %-6s % x\n", time.Now().Format("15:04:05.000000"), tag, data)
}

type nopRaw struct{}

func (nopRaw) Log(string, []byte) {}

// HexDump renders data as a classic hex dump, used by the decode command.
func HexDump(data []byte) string {
	return hex.Dump(data)
}
