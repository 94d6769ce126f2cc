//go:build linux

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitFile(t *testing.T) {
	unit := UnitFile("/usr/local/bin/tankctl", "")
	assert.Contains(t, unit, "ExecStart=/usr/local/bin/tankctl drive\n")
	assert.Contains(t, unit, "WantedBy=multi-user.target")

	unit = UnitFile("/usr/local/bin/tankctl", "  --link.kind=tcp --link.address=10.0.0.2:4000 ")
	assert.Contains(t, unit, "ExecStart=/usr/local/bin/tankctl drive --link.kind=tcp --link.address=10.0.0.2:4000\n")
}
