// Package cpu defines the 6502 architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation.
package cpu

import (
	"github.com/kelridge/sixfiveohtwo/flags"
	"github.com/kelridge/sixfiveohtwo/irq"
	"github.com/kelridge/sixfiveohtwo/memory"
	"github.com/kelridge/sixfiveohtwo/optable"
)

// Variant distinguishes which opcode table slots a Chip was built against.
// Unlike the real NMOS/CMOS split this has no effect on documented opcode
// semantics (decimal mode, illegal opcodes, and sub-cycle ordering are all
// out of scope); it only changes how an unassigned opcode slot behaves.
type Variant int

const (
	// VariantNMOS fills unassigned opcode slots in as single-byte NOPs,
	// matching the original silicon's habit of doing *something* rather
	// than halting.
	VariantNMOS Variant = iota
	// VariantCMOS rejects unassigned opcode slots with ErrUnknownOpcode.
	VariantCMOS
)

const (
	// ResetVector holds the address to load into PC on reset.
	ResetVector = uint16(0xFFFC)
	// NMIVector holds the address to load into PC on a raised NMI.
	NMIVector = uint16(0xFFFA)
	// IRQVector holds the address to load into PC on BRK or a raised IRQ.
	IRQVector = uint16(0xFFFE)

	stackBase = uint16(0x0100)
)

// Chip is a 6502 execution engine: registers, a cycle-left counter, and a
// single Tick entry point. It holds no direct reference to memory; every
// access goes through the Bus passed to Tick.
type Chip struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       flags.Register

	variant    Variant
	cyclesLeft int
	// halted is set when a BRK executes and is RunUntilBreak's stop
	// condition. It is tracked separately from the live P.Break() bit: a
	// BRK only sets B in the byte it pushes to the stack (the real
	// hardware has no live B flip-flop), so a later RTI restoring that
	// byte must not resurrect a stale halt signal.
	halted bool

	// irqSender and nmiSender are optional; a nil sender never raises.
	irqSender irq.Sender
	nmiSender irq.Sender
}

// New returns a Chip of the given variant with all registers zeroed. Use
// PowerOn to bring it to the spec's defined power-on state once a bus with
// a populated reset vector is available.
func New(variant Variant) *Chip {
	return &Chip{variant: variant}
}

// SetIRQSender installs the source Tick polls for a level IRQ.
func (c *Chip) SetIRQSender(s irq.Sender) { c.irqSender = s }

// SetNMISender installs the source Tick polls for an NMI. Tick samples it
// as a level at each instruction boundary, ignoring I; it does not detect
// edges, so an NMI that stays raised is serviced again at the next boundary.
func (c *Chip) SetNMISender(s irq.Sender) { c.nmiSender = s }

// PowerOn resets the Chip to the spec's power-on state: A=X=Y=0, P=0,
// SP=0xFF, PC loaded from the reset vector.
func (c *Chip) PowerOn(bus *memory.Bus) error {
	pc, err := bus.ReadU16LE(ResetVector)
	if err != nil {
		return err
	}
	c.A, c.X, c.Y = 0, 0, 0
	c.P = flags.New(0)
	c.SP = 0xFF
	c.PC = pc
	c.cyclesLeft = 0
	c.halted = false
	return nil
}

// Tick represents one host-level clock step. If the previous instruction
// left cycles outstanding, it decrements the counter and returns. Once the
// counter reaches zero it services a pending interrupt if one is raised,
// otherwise fetches, decodes, computes the effective address, executes the
// next instruction atomically, and charges cycles for it.
func (c *Chip) Tick(bus *memory.Bus) error {
	if c.cyclesLeft > 0 {
		c.cyclesLeft--
		return nil
	}

	if c.nmiSender != nil && c.nmiSender.Raised() {
		cycles, err := c.interrupt(bus, NMIVector, false)
		if err != nil {
			return err
		}
		c.cyclesLeft = cycles - 1
		return nil
	}
	if c.irqSender != nil && c.irqSender.Raised() && !c.P.InterruptDisable() {
		cycles, err := c.interrupt(bus, IRQVector, false)
		if err != nil {
			return err
		}
		c.cyclesLeft = cycles - 1
		return nil
	}

	op, err := bus.Read(c.PC)
	if err != nil {
		return err
	}

	entry, ok := optable.Lookup(op)
	if !ok {
		if c.variant == VariantCMOS {
			return ErrUnknownOpcode{Opcode: op, PC: c.PC}
		}
		c.PC++
		c.cyclesLeft = 2 - 1
		return nil
	}

	addr, crossed, err := c.effectiveAddress(bus, entry)
	if err != nil {
		return err
	}
	c.PC += uint16(entry.Bytes)

	extra, err := c.execute(bus, entry, addr)
	if err != nil {
		return err
	}

	// Branches fold both the taken and page-crossing extras into extra
	// already (see branch() in instructions.go): the crossed flag
	// effectiveAddress computes for Relative mode reflects the raw
	// arithmetic target regardless of whether the branch was taken, so
	// applying the generic page-penalty charge on top here would
	// double-count a taken+crossing branch and would also wrongly charge
	// an untaken branch whose never-used target happens to cross a page.
	cycles := int(entry.BaseCycles) + extra
	if entry.PagePenalty && crossed && entry.Mode != optable.Relative {
		cycles++
	}
	c.cyclesLeft = cycles - 1
	return nil
}

// RunUntilBreak repeatedly ticks bus and the chip until a BRK executes,
// primarily a test and tooling harness hook.
func (c *Chip) RunUntilBreak(bus *memory.Bus) error {
	for !c.halted {
		if err := c.Tick(bus); err != nil {
			return err
		}
		bus.Tick()
	}
	return nil
}

// push writes val to the stack and decrements SP, wrapping mod 256.
func (c *Chip) push(bus *memory.Bus, val uint8) {
	bus.Write(stackBase|uint16(c.SP), val)
	c.SP--
}

// pull increments SP, wrapping mod 256, and reads the resulting stack slot.
func (c *Chip) pull(bus *memory.Bus) (uint8, error) {
	c.SP++
	return bus.Read(stackBase | uint16(c.SP))
}

// interrupt performs the shared push-PC/push-P/set-I/load-vector sequence
// used by both BRK and a hardware-raised IRQ/NMI. setBreak controls whether
// the pushed status byte carries B set, matching the real distinction
// between a software BRK and a hardware-driven interrupt.
func (c *Chip) interrupt(bus *memory.Bus, vector uint16, setBreak bool) (int, error) {
	c.push(bus, uint8(c.PC>>8))
	c.push(bus, uint8(c.PC))
	p := c.P
	p.SetBreak(setBreak)
	c.push(bus, p.Byte())
	c.P.SetInterruptDisable(true)
	target, err := bus.ReadU16LE(vector)
	if err != nil {
		return 0, err
	}
	c.PC = target
	return 7, nil
}
