package disassemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelridge/sixfiveohtwo/memory"
)

func TestStepImmediate(t *testing.T) {
	ram := memory.NewRAM(16)
	require.NoError(t, ram.Load([]byte{0xA9, 0x42}, 0))
	bus := memory.NewBus()
	bus.Connect(ram, 0, 15)

	line, size := Step(0, bus)
	assert.Equal(t, 2, size)
	assert.True(t, strings.Contains(line, "LDA"))
	assert.True(t, strings.Contains(line, "#42"))
}

func TestStepUnassignedOpcode(t *testing.T) {
	ram := memory.NewRAM(16)
	require.NoError(t, ram.Load([]byte{0x02}, 0))
	bus := memory.NewBus()
	bus.Connect(ram, 0, 15)

	line, size := Step(0, bus)
	assert.Equal(t, 1, size)
	assert.True(t, strings.Contains(line, "???"))
}

func TestListingAdvancesByInstructionSize(t *testing.T) {
	ram := memory.NewRAM(16)
	require.NoError(t, ram.Load([]byte{0xA9, 0x01, 0xAA, 0x00}, 0)) // LDA #1; TAX; BRK
	bus := memory.NewBus()
	bus.Connect(ram, 0, 15)

	lines := Listing(0, 3, bus)
	require.Len(t, lines, 3)
	assert.True(t, strings.Contains(lines[0], "LDA"))
	assert.True(t, strings.Contains(lines[1], "TAX"))
	assert.True(t, strings.Contains(lines[2], "BRK"))
}
