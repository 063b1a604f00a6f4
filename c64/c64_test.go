package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelridge/sixfiveohtwo/cpu"
	"github.com/kelridge/sixfiveohtwo/io"
)

func newTestMachine(t *testing.T, program []byte) *Machine {
	t.Helper()
	m := New(nil, cpu.VariantNMOS)
	require.NoError(t, m.LoadProgram(program, 0))
	require.NoError(t, m.LoadProgram([]byte{0x00, 0x00}, 0xFFFC)) // reset -> 0x0000
	require.NoError(t, m.PowerOn())
	return m
}

func tickN(t *testing.T, m *Machine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, m.CPU.Tick(m.Bus))
		m.Bus.Tick()
	}
}

// Scenario 1: multiply 5*6 by repeated addition, end to end through the
// composed Machine rather than a bare Chip.
func TestMachineMultiplyByRepeatedAdd(t *testing.T) {
	program := []byte{
		0xA2, 0x05, // LDX #5
		0xA0, 0x06, // LDY #6
		0xA9, 0x00, // LDA #0
		0x84, 0x00, // STY $0
		0x18,       // loop: CLC
		0x65, 0x00, // ADC $0
		0xCA,       // DEX
		0xE0, 0x00, // CPX #0
		0xD0, 0xF8, // BNE loop
		0xAA, // TAX
		0x00, // BRK
	}
	m := newTestMachine(t, program)
	require.NoError(t, m.RunUntilBreak())
	assert.Equal(t, uint8(30), m.CPU.X)
}

// Scenario 2: ADC overflow edge.
func TestMachineADCOverflowEdge(t *testing.T) {
	m := newTestMachine(t, []byte{0x69, 0x40, 0x00}) // ADC #$40; BRK
	m.CPU.A = 0x3F
	m.CPU.P.SetCarry(true)
	require.NoError(t, m.RunUntilBreak())
	assert.Equal(t, uint8(0x80), m.CPU.A)
	assert.False(t, m.CPU.P.Carry())
	assert.True(t, m.CPU.P.Overflow())
}

// Scenario 4: JSR/RTS round trip.
func TestMachineJSRRTSRoundTrip(t *testing.T) {
	program := []byte{
		0x20, 0x06, 0x00, // JSR $0006
		0xA2, 0xAB, // LDX #$AB
		0x00,       // BRK
		0xA0, 0xBC, // $0006: LDY #$BC
		0x60, // RTS
	}
	m := newTestMachine(t, program)
	require.NoError(t, m.RunUntilBreak())
	assert.Equal(t, uint8(0xAB), m.CPU.X)
	assert.Equal(t, uint8(0xBC), m.CPU.Y)
}

// Scenario 5: BRK/RTI round trip, driven by a fixed tick budget since BRK
// here is a trap into a handler, not the machine's final halt.
func TestMachineBRKRTIRoundTrip(t *testing.T) {
	m := New(nil, cpu.VariantNMOS)
	program := []byte{
		0x00, 0xEA, // $0000: BRK
		0xA2, 0x05, // $0002: LDX #$05 (resumed here after RTI)
		0x00, 0xEA, // $0004: BRK (runs on tick 18 and re-enters the handler, leaving X and Y at 5)
	}
	require.NoError(t, m.LoadProgram(program, 0))
	handler := []byte{
		0xA0, 0x05, // $0010: LDY #$05
		0x40, // RTI
	}
	require.NoError(t, m.LoadProgram(handler, 0x0010))
	require.NoError(t, m.LoadProgram([]byte{0x00, 0x00}, 0xFFFC)) // reset -> 0x0000
	require.NoError(t, m.LoadProgram([]byte{0x10, 0x00}, 0xFFFE)) // IRQ/BRK vector -> 0x0010
	require.NoError(t, m.PowerOn())

	tickN(t, m, 20)
	assert.Equal(t, uint8(0x05), m.CPU.X)
	assert.Equal(t, uint8(0x05), m.CPU.Y)
}

// Scenario 6: indirect-JMP page-wrap bug.
func TestMachineIndirectJMPPageBug(t *testing.T) {
	m := New(nil, cpu.VariantNMOS)
	require.NoError(t, m.LoadProgram([]byte{0x6C, 0xFF, 0x30}, 0)) // JMP ($30FF)
	require.NoError(t, m.LoadProgram([]byte{0x40}, 0x3000))
	require.NoError(t, m.LoadProgram([]byte{0x80}, 0x30FF))
	require.NoError(t, m.LoadProgram([]byte{0x50}, 0x3100))
	require.NoError(t, m.LoadProgram([]byte{0x00, 0x00}, 0xFFFC))
	require.NoError(t, m.PowerOn())

	tickN(t, m, 1)
	assert.Equal(t, uint16(0x4080), m.CPU.PC)
}

// VIC writes at 0xB000 should reach the device, not fall through to RAM
// on either side of the mapped hole.
func TestMachineVICWindowIsRoutedSeparatelyFromRAM(t *testing.T) {
	program := []byte{
		0xA9, 0x07, // LDA #$07
		0x8D, 0x00, 0xB0, // STA $B000
		0x00, // BRK
	}
	m := newTestMachine(t, program)
	require.NoError(t, m.RunUntilBreak())
	assert.Equal(t, uint8(0x07), m.VIC.Read(0xB000))
}

// RAM above the VIC window (including the reset/IRQ vectors) is still
// reachable, proving the hole doesn't swallow the top of the address space.
func TestMachineRAMAboveVICWindowIsReachable(t *testing.T) {
	m := New(nil, cpu.VariantNMOS)
	require.NoError(t, m.LoadProgram([]byte{0xA9, 0x09, 0x00}, 0xC000)) // LDA #$09; BRK
	require.NoError(t, m.LoadProgram([]byte{0x00, 0xC0}, 0xFFFC))       // reset -> 0xC000
	require.NoError(t, m.PowerOn())
	require.NoError(t, m.RunUntilBreak())
	assert.Equal(t, uint8(0x09), m.CPU.A)
}

// An io.Port8 latched onto the VIC (a keyboard matrix or joystick, in
// spirit) is readable by a running program as ordinary memory.
func TestMachineReadsLatchedInputPort(t *testing.T) {
	program := []byte{
		0xAD, 0x00, 0xB1, // LDA $B100 (top byte of the VIC's range)
		0x00, // BRK
	}
	m := newTestMachine(t, program)
	var latch io.Latch
	latch.Set(0x5A)
	m.VIC.SetInputPort(&latch)
	m.Bus.Tick() // prime the VIC's latch before the program reads it

	require.NoError(t, m.RunUntilBreak())
	assert.Equal(t, uint8(0x5A), m.CPU.A)
}
