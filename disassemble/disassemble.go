// Package disassemble implements a disassembler for 6502 opcodes, walking
// optable.Table instead of a hand-maintained switch so its output always
// agrees with what cpu.Chip will actually execute.
package disassemble

import (
	"fmt"

	"github.com/kelridge/sixfiveohtwo/memory"
	"github.com/kelridge/sixfiveohtwo/optable"
)

// Step disassembles the instruction at pc, returning the formatted line and
// the number of bytes to advance the PC to reach the next instruction. This
// does not interpret the instruction, so a JMP target is printed as text,
// not followed. Always reads up to two bytes past pc, so callers must only
// call this on a valid instruction boundary with enough trailing memory
// mapped (unmapped trailing bytes are tolerated and printed as 00).
func Step(pc uint16, bus *memory.Bus) (string, int) {
	op, err := bus.Read(pc)
	if err != nil {
		return fmt.Sprintf("%.4X ??       <unmapped>", pc), 1
	}

	entry, ok := optable.Lookup(op)
	if !ok {
		return fmt.Sprintf("%.4X %.2X       ???", pc, op), 1
	}

	b1, _ := bus.Read(pc + 1)
	b2, _ := bus.Read(pc + 2)

	out := fmt.Sprintf("%.4X %.2X ", pc, op)
	switch entry.Mode {
	case optable.Immediate:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", b1, entry.Mnemonic, b1)
	case optable.ZeroPage:
		out += fmt.Sprintf("%.2X      %s %.2X        ", b1, entry.Mnemonic, b1)
	case optable.ZeroPageX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", b1, entry.Mnemonic, b1)
	case optable.ZeroPageY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", b1, entry.Mnemonic, b1)
	case optable.IndirectX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", b1, entry.Mnemonic, b1)
	case optable.IndirectY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", b1, entry.Mnemonic, b1)
	case optable.Absolute:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", b1, b2, entry.Mnemonic, b2, b1)
	case optable.AbsoluteX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", b1, b2, entry.Mnemonic, b2, b1)
	case optable.AbsoluteY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", b1, b2, entry.Mnemonic, b2, b1)
	case optable.Indirect:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", b1, b2, entry.Mnemonic, b2, b1)
	case optable.Implied:
		out += fmt.Sprintf("        %s           ", entry.Mnemonic)
	case optable.Accumulator:
		out += fmt.Sprintf("        %s A         ", entry.Mnemonic)
	case optable.Relative:
		target := pc + uint16(entry.Bytes) + uint16(int8(b1))
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", b1, entry.Mnemonic, b1, target)
	}
	return out, int(entry.Bytes)
}

// Listing disassembles count instructions starting at pc.
func Listing(pc uint16, count int, bus *memory.Bus) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line, size := Step(pc, bus)
		lines = append(lines, line)
		pc += uint16(size)
	}
	return lines
}
