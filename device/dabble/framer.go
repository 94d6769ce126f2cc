package dabble

import "bytes"

// Window holds the most recently received bytes, oldest first.
type Window struct {
	buf [FrameSize]byte
	n   int
}

// Push appends b, dropping the oldest byte when the window is full.
func (w *Window) Push(b byte) {
	if w.n == len(w.buf) {
		copy(w.buf[:], w.buf[1:])
		w.n--
	}
	w.buf[w.n] = b
	w.n++
}

// Len returns the number of buffered bytes.
func (w *Window) Len() int { return w.n }

// Full reports whether the window holds a whole frame worth of bytes.
func (w *Window) Full() bool { return w.n == len(w.buf) }

// Bytes returns the buffered bytes. The slice aliases the window and is only
// valid until the next Push.
func (w *Window) Bytes() []byte { return w.buf[:w.n] }

// Reset empties the window.
func (w *Window) Reset() { w.n = 0 }

// Framer finds gamepad frames in an unbounded byte stream.
//
// Nothing but the window is retained between bytes: every byte re-tests the
// last eight received, so a desynchronised stream recovers within one frame.
// Bytes that never line up into a frame are dropped without notice.
type Framer struct {
	win Window
}

// NewFramer returns a Framer with an empty window.
func NewFramer() *Framer {
	return &Framer{}
}

// Push feeds one byte and reports the frame it completes, if any.
func (f *Framer) Push(b byte) (Frame, bool) {
	f.win.Push(b)
	if !f.win.Full() {
		return Frame{}, false
	}
	w := f.win.Bytes()
	if w[TerminatorOff] != Terminator || !bytes.Equal(w[:MagicSize], Magic[:]) {
		return Frame{}, false
	}
	return Frame{Buttons: Buttons(w[ButtonsOff]), Joystick: w[JoystickOff]}, true
}

// Window exposes the current look-back window.
func (f *Framer) Window() *Window { return &f.win }

// Scan runs data through a fresh Framer and returns every frame found.
func Scan(data []byte) []Frame {
	var (
		f      Framer
		frames []Frame
	)
	for _, b := range data {
		if fr, ok := f.Push(b); ok {
			frames = append(frames, fr)
		}
	}
	return frames
}
