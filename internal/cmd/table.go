package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tracktank/tankctl/device/dabble"
	"github.com/tracktank/tankctl/drive"
)

// Table prints the steering curve.
type Table struct {
	Radius int    `help:"Stick radius (1-7)" default:"7" short:"r"`
	Format string `help:"Output format" default:"text" enum:"text,json,yaml,toml" short:"f"`

	out io.Writer
}

// TableRow is the track split for one stick direction.
type TableRow struct {
	Direction int     `json:"direction" yaml:"direction" toml:"direction"`
	Degrees   int     `json:"degrees" yaml:"degrees" toml:"degrees"`
	Left      float64 `json:"left" yaml:"left" toml:"left"`
	Right     float64 `json:"right" yaml:"right" toml:"right"`
}

// SteeringTable evaluates the mapper for every direction at one radius.
func SteeringTable(radius int) []TableRow {
	rows := make([]TableRow, 0, dabble.Directions)
	for d := range dabble.Directions {
		r := dabble.Reading{Radius: radius, Direction: d}
		cmd := drive.Map(r)
		rows = append(rows, TableRow{
			Direction: d,
			Degrees:   r.Degrees(),
			Left:      cmd.Left.Signed(),
			Right:     cmd.Right.Signed(),
		})
	}
	return rows
}

// Run is called by Kong when the table command is executed.
func (c *Table) Run(logger *slog.Logger) error {
	if c.Radius < 1 || c.Radius > dabble.MaxRadius {
		return fmt.Errorf("radius %d out of range 1-%d", c.Radius, dabble.MaxRadius)
	}
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	rows := SteeringTable(c.Radius)
	if c.Format != FormatText {
		return encode(out, c.Format, struct {
			Radius int        `json:"radius" yaml:"radius" toml:"radius"`
			Rows   []TableRow `json:"rows" yaml:"rows" toml:"row"`
		}{c.Radius, rows})
	}
	fmt.Fprintf(out, "%3s %4s %8s %8s\n", "dir", "deg", "left", "right")
	for _, r := range rows {
		fmt.Fprintf(out, "%3d %4d %8.2f %8.2f\n", r.Direction, r.Degrees, r.Left, r.Right)
	}
	return nil
}
