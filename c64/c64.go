// Package c64 wires a memory.RAM, a vic.VIC, and a cpu.Chip onto one
// memory.Bus, following the composition in original_source/src/c64.rs.
// It is the repo's demonstrable top-level assembly point, not a core
// collaborator: nothing in cpu, memory, flags, or optable imports it.
package c64

import (
	"github.com/kelridge/sixfiveohtwo/cpu"
	"github.com/kelridge/sixfiveohtwo/memory"
	"github.com/kelridge/sixfiveohtwo/monitor"
	"github.com/kelridge/sixfiveohtwo/vic"
)

const (
	totalSize = 0x10000
	vicBase   = 0xB000
	vicSize   = 0x101 // 0xB000-0xB100 inclusive
	vicTop    = vicBase + vicSize - 1
)

// Machine owns every device and the bus connecting them. Each device is
// long-lived and owned here; the bus holds only the (device, lo, hi)
// tuples, never its own strong reference.
type Machine struct {
	RAM *memory.RAM
	VIC *vic.VIC
	CPU *cpu.Chip
	Bus *memory.Bus
}

// New assembles a Machine with a C64-like memory map: RAM across the full
// 64KB address space except the VIC's window at 0xB000-0xB100, which the
// original maps as a hole rather than banking RAM underneath it. The RAM
// device itself is one 64KB buffer addressed directly, per memory.RAM's
// contract of always being mapped from 0; only the bus connections carve
// the hole out, which keeps the reset/IRQ/NMI vectors at the top of memory
// reachable the way cpu.Chip.PowerOn expects. mon may be nil, in which case
// the VIC's Tick skips the monitor write but still latches an installed
// input port.
func New(mon monitor.Monitor, variant cpu.Variant) *Machine {
	m := &Machine{
		RAM: memory.NewRAM(totalSize),
		VIC: vic.New(mon, vicSize),
		CPU: cpu.New(variant),
		Bus: memory.NewBus(),
	}
	m.Bus.Connect(m.RAM, 0, vicBase-1)
	m.Bus.Connect(m.VIC, vicBase, vicTop)
	m.Bus.Connect(m.RAM, vicTop+1, totalSize-1)
	return m
}

// PowerOn resets the CPU to its power-on state, reading the reset vector
// from the bus (which must already have a program loaded).
func (m *Machine) PowerOn() error {
	return m.CPU.PowerOn(m.Bus)
}

// LoadProgram bulk-copies data into RAM at offset.
func (m *Machine) LoadProgram(data []byte, offset uint16) error {
	return m.RAM.Load(data, offset)
}

// RunUntilBreak ticks the CPU and bus together until a BRK executes.
func (m *Machine) RunUntilBreak() error {
	return m.CPU.RunUntilBreak(m.Bus)
}
