package cpu

import (
	"github.com/kelridge/sixfiveohtwo/memory"
	"github.com/kelridge/sixfiveohtwo/optable"
)

// execute performs the instruction's full effect (all reads, writes, and
// register updates) and returns any cycle extras beyond the opcode's base
// cost: taken-branch and page-cross-on-branch charges. Page-cross charges
// for indexed reads are applied by the caller from the addressing-mode
// result, since those are a property of the address computation, not of
// the instruction itself.
func (c *Chip) execute(bus *memory.Bus, entry optable.Entry, addr uint16) (int, error) {
	switch entry.Mnemonic {
	case optable.LDA:
		return 0, c.load(bus, &c.A, addr)
	case optable.LDX:
		return 0, c.load(bus, &c.X, addr)
	case optable.LDY:
		return 0, c.load(bus, &c.Y, addr)

	case optable.STA:
		bus.Write(addr, c.A)
		return 0, nil
	case optable.STX:
		bus.Write(addr, c.X)
		return 0, nil
	case optable.STY:
		bus.Write(addr, c.Y)
		return 0, nil

	case optable.TAX:
		c.X = c.A
		c.P.SetNZ(c.X)
	case optable.TXA:
		c.A = c.X
		c.P.SetNZ(c.A)
	case optable.TAY:
		c.Y = c.A
		c.P.SetNZ(c.Y)
	case optable.TYA:
		c.A = c.Y
		c.P.SetNZ(c.A)
	case optable.TSX:
		c.X = c.SP
		c.P.SetNZ(c.X)
	case optable.TXS:
		c.SP = c.X

	case optable.INC:
		return 0, c.bumpMemory(bus, addr, 1)
	case optable.DEC:
		return 0, c.bumpMemory(bus, addr, ^uint8(0))
	case optable.INX:
		c.X++
		c.P.SetNZ(c.X)
	case optable.INY:
		c.Y++
		c.P.SetNZ(c.Y)
	case optable.DEX:
		c.X--
		c.P.SetNZ(c.X)
	case optable.DEY:
		c.Y--
		c.P.SetNZ(c.Y)

	case optable.AND:
		return 0, c.logical(bus, addr, func(a, m uint8) uint8 { return a & m })
	case optable.ORA:
		return 0, c.logical(bus, addr, func(a, m uint8) uint8 { return a | m })
	case optable.EOR:
		return 0, c.logical(bus, addr, func(a, m uint8) uint8 { return a ^ m })

	case optable.BIT:
		m, err := bus.Read(addr)
		if err != nil {
			return 0, err
		}
		c.P.SetZero(c.A&m == 0)
		c.P.SetNegative(m&0x80 != 0)
		c.P.SetOverflow(m&0x40 != 0)

	case optable.CLC:
		c.P.SetCarry(false)
	case optable.SEC:
		c.P.SetCarry(true)
	case optable.CLD:
		c.P.SetDecimal(false)
	case optable.SED:
		c.P.SetDecimal(true)
	case optable.CLI:
		c.P.SetInterruptDisable(false)
	case optable.SEI:
		c.P.SetInterruptDisable(true)
	case optable.CLV:
		c.P.SetOverflow(false)

	case optable.BCC:
		return c.branch(!c.P.Carry(), addr)
	case optable.BCS:
		return c.branch(c.P.Carry(), addr)
	case optable.BEQ:
		return c.branch(c.P.Zero(), addr)
	case optable.BNE:
		return c.branch(!c.P.Zero(), addr)
	case optable.BMI:
		return c.branch(c.P.Negative(), addr)
	case optable.BPL:
		return c.branch(!c.P.Negative(), addr)
	case optable.BVC:
		return c.branch(!c.P.Overflow(), addr)
	case optable.BVS:
		return c.branch(c.P.Overflow(), addr)

	case optable.ASL:
		return 0, c.shift(bus, entry.Mode, addr, c.asl)
	case optable.LSR:
		return 0, c.shift(bus, entry.Mode, addr, c.lsr)
	case optable.ROL:
		return 0, c.shift(bus, entry.Mode, addr, c.rol)
	case optable.ROR:
		return 0, c.shift(bus, entry.Mode, addr, c.ror)

	case optable.PHA:
		c.push(bus, c.A)
	case optable.PHP:
		c.push(bus, c.P.Byte())
	case optable.PLA:
		v, err := c.pull(bus)
		if err != nil {
			return 0, err
		}
		c.A = v
		c.P.SetNZ(c.A)
	case optable.PLP:
		v, err := c.pull(bus)
		if err != nil {
			return 0, err
		}
		c.P.SetByte(v)

	case optable.JSR:
		ret := c.PC - 1
		c.push(bus, uint8(ret>>8))
		c.push(bus, uint8(ret))
		c.PC = addr
	case optable.RTS:
		lo, err := c.pull(bus)
		if err != nil {
			return 0, err
		}
		hi, err := c.pull(bus)
		if err != nil {
			return 0, err
		}
		c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
	case optable.JMP:
		c.PC = addr

	case optable.CMP:
		return 0, c.compare(bus, c.A, addr)
	case optable.CPX:
		return 0, c.compare(bus, c.X, addr)
	case optable.CPY:
		return 0, c.compare(bus, c.Y, addr)

	case optable.ADC:
		m, err := bus.Read(addr)
		if err != nil {
			return 0, err
		}
		c.adc(m)
	case optable.SBC:
		m, err := bus.Read(addr)
		if err != nil {
			return 0, err
		}
		c.adc(^m)

	case optable.BRK:
		return 0, c.interruptSoftware(bus)
	case optable.RTI:
		return 0, c.rti(bus)

	case optable.NOP:
		// No effect beyond the cycle charge already applied by the caller.
	}
	return 0, nil
}

func (c *Chip) load(bus *memory.Bus, reg *uint8, addr uint16) error {
	v, err := bus.Read(addr)
	if err != nil {
		return err
	}
	*reg = v
	c.P.SetNZ(*reg)
	return nil
}

func (c *Chip) logical(bus *memory.Bus, addr uint16, op func(a, m uint8) uint8) error {
	m, err := bus.Read(addr)
	if err != nil {
		return err
	}
	c.A = op(c.A, m)
	c.P.SetNZ(c.A)
	return nil
}

func (c *Chip) bumpMemory(bus *memory.Bus, addr uint16, delta uint8) error {
	m, err := bus.Read(addr)
	if err != nil {
		return err
	}
	m += delta
	bus.Write(addr, m)
	c.P.SetNZ(m)
	return nil
}

// branch applies a conditional branch's effect. If taken, PC moves to addr
// and the caller is charged +1 cycle, +1 more if the jump crosses a page.
// If not taken, PC is left exactly where the caller already advanced it.
func (c *Chip) branch(taken bool, addr uint16) (int, error) {
	if !taken {
		return 0, nil
	}
	crossed := !samePage(c.PC, addr)
	c.PC = addr
	if crossed {
		return 2, nil
	}
	return 1, nil
}

func (c *Chip) shift(bus *memory.Bus, mode optable.Mode, addr uint16, op func(uint8) uint8) error {
	if mode == optable.Accumulator {
		c.A = op(c.A)
		return nil
	}
	m, err := bus.Read(addr)
	if err != nil {
		return err
	}
	m = op(m)
	bus.Write(addr, m)
	return nil
}

func (c *Chip) asl(v uint8) uint8 {
	c.P.SetCarry(v&0x80 != 0)
	r := v << 1
	c.P.SetNZ(r)
	return r
}

func (c *Chip) lsr(v uint8) uint8 {
	c.P.SetCarry(v&0x01 != 0)
	r := v >> 1
	c.P.SetNZ(r)
	return r
}

func (c *Chip) rol(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.Carry() {
		carryIn = 1
	}
	c.P.SetCarry(v&0x80 != 0)
	r := (v << 1) | carryIn
	c.P.SetNZ(r)
	return r
}

func (c *Chip) ror(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.Carry() {
		carryIn = 0x80
	}
	c.P.SetCarry(v&0x01 != 0)
	r := (v >> 1) | carryIn
	c.P.SetNZ(r)
	return r
}

func (c *Chip) compare(bus *memory.Bus, reg uint8, addr uint16) error {
	m, err := bus.Read(addr)
	if err != nil {
		return err
	}
	diff := reg - m
	c.P.SetCarry(reg >= m)
	c.P.SetZero(diff == 0)
	c.P.SetNegative(diff&0x80 != 0)
	return nil
}

// adc implements ADC's addition. SBC is expressed as adc(^m) by the caller,
// since `A + ^M + C` produces the identical carry/overflow/result to a
// subtraction of M with borrow.
func (c *Chip) adc(m uint8) {
	carryIn := uint16(0)
	if c.P.Carry() {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := uint8(sum)
	c.P.SetCarry(sum > 0xFF)
	c.P.SetOverflow((c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.P.SetNZ(c.A)
}

func (c *Chip) interruptSoftware(bus *memory.Bus) error {
	_, err := c.interrupt(bus, IRQVector, true)
	c.halted = true
	return err
}

func (c *Chip) rti(bus *memory.Bus) error {
	p, err := c.pull(bus)
	if err != nil {
		return err
	}
	c.P.SetByte(p)
	lo, err := c.pull(bus)
	if err != nil {
		return err
	}
	hi, err := c.pull(bus)
	if err != nil {
		return err
	}
	c.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}
