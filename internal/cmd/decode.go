package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/drive"
	"github.com/tracktank/tankctl/internal/log"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Decode scans a capture of the link for gamepad frames.
type Decode struct {
	Input  string `arg:"" optional:"" help:"Capture file, '-' for stdin" default:"-"`
	Format string `help:"Output format" default:"text" enum:"text,json,yaml,toml" short:"f"`
	Dump   bool   `help:"Print a hex dump of the capture before the frames"`

	out io.Writer
}

// DecodedFrame is one frame found in a capture.
type DecodedFrame struct {
	Offset    int     `json:"offset" yaml:"offset" toml:"offset"`
	Buttons   string  `json:"buttons" yaml:"buttons" toml:"buttons"`
	Radius    int     `json:"radius" yaml:"radius" toml:"radius"`
	Direction int     `json:"direction" yaml:"direction" toml:"direction"`
	Left      float64 `json:"left" yaml:"left" toml:"left"`
	Right     float64 `json:"right" yaml:"right" toml:"right"`
	Brake     bool    `json:"brake" yaml:"brake" toml:"brake"`
}

// DecodeCapture returns every frame in data with its start offset.
func DecodeCapture(data []byte) []DecodedFrame {
	f := dabble.NewFramer()
	var frames []DecodedFrame
	for i, b := range data {
		fr, ok := f.Push(b)
		if !ok {
			continue
		}
		r := fr.Reading()
		cmd := drive.Map(r)
		frames = append(frames, DecodedFrame{
			Offset:    i + 1 - dabble.FrameSize,
			Buttons:   r.Buttons.String(),
			Radius:    r.Radius,
			Direction: r.Direction,
			Left:      cmd.Left.Signed(),
			Right:     cmd.Right.Signed(),
			Brake:     cmd.Brake,
		})
	}
	return frames
}

// Run is called by Kong when the decode command is executed.
func (c *Decode) Run(logger *slog.Logger) error {
	var (
		data []byte
		err  error
	)
	if c.Input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.Input)
	}
	if err != nil {
		return fmt.Errorf("read capture: %w", err)
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	if c.Dump {
		fmt.Fprint(out, log.HexDump(data))
	}

	frames := DecodeCapture(data)
	logger.Debug("capture decoded", "bytes", len(data), "frames", len(frames))
	return writeFrames(out, c.Format, frames)
}

func writeFrames(w io.Writer, format string, frames []DecodedFrame) error {
	switch format {
	case FormatText:
		for _, f := range frames {
			fmt.Fprintf(w, "@%-6d buttons=%-14s r=%d d=%-2d left=%7.2f right=%7.2f brake=%t\n",
				f.Offset, f.Buttons, f.Radius, f.Direction, f.Left, f.Right, f.Brake)
		}
		return nil
	default:
		return encode(w, format, struct {
			Frames []DecodedFrame `json:"frames" yaml:"frames" toml:"frame"`
		}{frames})
	}
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
