// Package vic implements the supplemented VIC-style video device: a
// small character-cell screen RAM mapped at 0xB000-0xB100 that reports
// cell 0 to a monitor.Monitor sink on every Tick, and optionally latches
// an io.Port8 (a keyboard matrix, a joystick) into the top byte of its
// range so the CPU can read external input without knowing about the
// input device directly. Grounded in original_source/src/vic.rs's
// SimpleVic.
package vic

import (
	"github.com/kelridge/sixfiveohtwo/io"
	"github.com/kelridge/sixfiveohtwo/memory"
	"github.com/kelridge/sixfiveohtwo/monitor"
)

// Base is the global address the device is mapped at.
const Base = uint16(0xB000)

// VIC is a memory.Device backed by a fixed byte buffer, plus a Monitor it
// reports to on every Tick and an optional input port it latches from.
type VIC struct {
	mem  []uint8
	mon  monitor.Monitor
	port io.Port8
}

// New returns a VIC of size bytes (inclusive of the control byte at the top
// of its range) reporting to mon.
func New(mon monitor.Monitor, size int) *VIC {
	return &VIC{mem: make([]uint8, size), mon: mon}
}

// SetInputPort installs the Port8 this VIC latches into its top byte on
// every Tick. A nil port (the default) leaves that byte untouched.
func (v *VIC) SetInputPort(port io.Port8) { v.port = port }

// inputCell is the local offset of the latched input byte, at the top of
// the device's mapped range so it doesn't collide with screen RAM at the
// bottom.
func (v *VIC) inputCell() int { return len(v.mem) - 1 }

// Read implements memory.Device.
func (v *VIC) Read(addr uint16) uint8 {
	return v.mem[addr-Base]
}

// Write implements memory.Device. addr below Base indicates a bus
// misconfiguration, not a bad program, so it is fatal via a panic the bus
// layer does not otherwise produce; callers are expected to only route
// addresses in [Base, Base+size) here.
func (v *VIC) Write(addr uint16, val uint8) {
	if addr < Base {
		panic(memory.ErrDeviceOffsetUnderflow{Addr: addr, Base: Base})
	}
	v.mem[addr-Base] = val
}

// Tick implements memory.Device. It reads cell 0 of the screen buffer and
// makes a single symbol write to the monitor: the symbol 'a' in red at
// column cell-0-value, row 0, mirroring the
// original's minimal "wire the core to something observable" behavior. It
// also latches the installed input port's current value into the top byte
// of the device's range, ahead of the next instruction that might read it.
func (v *VIC) Tick() {
	if v.port != nil {
		v.mem[v.inputCell()] = v.port.Input()
	}
	if v.mon == nil {
		return
	}
	v.mon.SetSymbol(uint16(v.mem[0]), 0, 'a', monitor.Red)
}

// ReadSlice implements memory.Device.
func (v *VIC) ReadSlice(lo, hi uint16) ([]byte, error) {
	loOff, hiOff := lo-Base, hi-Base
	if int(hiOff) >= len(v.mem) || loOff > hiOff {
		return nil, memory.ErrOutOfRange{Offset: lo, Length: int(hi-lo) + 1, Size: len(v.mem)}
	}
	out := make([]byte, int(hiOff-loOff)+1)
	copy(out, v.mem[loOff:hiOff+1])
	return out, nil
}

// Size returns the number of addressable bytes in the buffer.
func (v *VIC) Size() int {
	return len(v.mem)
}

// Load bulk-copies data into the buffer at a local offset (0-based, not a
// global bus address). It fails with ErrOutOfRange without mutating the
// buffer if the span would run past its end.
func (v *VIC) Load(data []byte, offset uint16) error {
	if int(offset)+len(data) > len(v.mem) {
		return memory.ErrOutOfRange{Offset: offset, Length: len(data), Size: len(v.mem)}
	}
	copy(v.mem[offset:], data)
	return nil
}
