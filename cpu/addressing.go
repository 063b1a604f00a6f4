package cpu

import (
	"github.com/kelridge/sixfiveohtwo/memory"
	"github.com/kelridge/sixfiveohtwo/optable"
)

// samePage reports whether a and b fall in the same 256-byte page.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// effectiveAddress resolves the operand address for entry given the chip's
// current (pre-advance) PC, returning whether the computation crossed a
// page boundary. It never mutates PC; the caller advances PC by the
// instruction's size afterward.
func (c *Chip) effectiveAddress(bus *memory.Bus, entry optable.Entry) (addr uint16, crossed bool, err error) {
	switch entry.Mode {
	case optable.Implied, optable.Accumulator:
		return 0, false, nil

	case optable.Immediate:
		return c.PC + 1, false, nil

	case optable.ZeroPage:
		v, err := bus.Read(c.PC + 1)
		return uint16(v), false, err

	case optable.ZeroPageX:
		v, err := bus.Read(c.PC + 1)
		return uint16(v+c.X) & 0xFF, false, err

	case optable.ZeroPageY:
		v, err := bus.Read(c.PC + 1)
		return uint16(v+c.Y) & 0xFF, false, err

	case optable.Absolute:
		v, err := bus.ReadU16LE(c.PC + 1)
		return v, false, err

	case optable.AbsoluteX:
		base, err := bus.ReadU16LE(c.PC + 1)
		if err != nil {
			return 0, false, err
		}
		addr := base + uint16(c.X)
		return addr, !samePage(base, addr), nil

	case optable.AbsoluteY:
		base, err := bus.ReadU16LE(c.PC + 1)
		if err != nil {
			return 0, false, err
		}
		addr := base + uint16(c.Y)
		return addr, !samePage(base, addr), nil

	case optable.Indirect:
		ptr, err := bus.ReadU16LE(c.PC + 1)
		if err != nil {
			return 0, false, err
		}
		target, err := c.readIndirectWithPageBug(bus, ptr)
		return target, false, err

	case optable.IndirectX:
		zp, err := bus.Read(c.PC + 1)
		if err != nil {
			return 0, false, err
		}
		ptr := uint16(zp + c.X) // wraps within the zero page by construction (uint8 addition)
		target, err := c.readZeroPageU16(bus, uint8(ptr))
		return target, false, err

	case optable.IndirectY:
		zp, err := bus.Read(c.PC + 1)
		if err != nil {
			return 0, false, err
		}
		base, err := c.readZeroPageU16(bus, zp)
		if err != nil {
			return 0, false, err
		}
		addr := base + uint16(c.Y)
		return addr, !samePage(base, addr), nil

	case optable.Relative:
		offset, err := bus.Read(c.PC + 1)
		if err != nil {
			return 0, false, err
		}
		next := c.PC + uint16(entry.Bytes)
		target := next + uint16(int8(offset))
		return target, !samePage(next, target), nil
	}
	return 0, false, ErrUnknownOpcode{PC: c.PC}
}

// readZeroPageU16 reads a little-endian 16 bit pointer stored at ptr,
// wrapping the high byte fetch within the zero page rather than crossing
// into page 1 (the real hardware behavior for (zp,X) and (zp),Y).
func (c *Chip) readZeroPageU16(bus *memory.Bus, ptr uint8) (uint16, error) {
	lo, err := bus.Read(uint16(ptr))
	if err != nil {
		return 0, err
	}
	hi, err := bus.Read(uint16(ptr + 1))
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// readIndirectWithPageBug reproduces the JMP (addr) page-wrap bug: if the
// low byte of ptr is 0xFF, the high byte of the target is fetched from
// ptr&0xFF00 rather than ptr+1.
func (c *Chip) readIndirectWithPageBug(bus *memory.Bus, ptr uint16) (uint16, error) {
	lo, err := bus.Read(ptr)
	if err != nil {
		return 0, err
	}
	var hiAddr uint16
	if ptr&0xFF == 0xFF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi, err := bus.Read(hiAddr)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}
