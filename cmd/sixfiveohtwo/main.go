// sixfiveohtwo loads a flat binary into a c64.Machine and runs it until a
// BRK halts the CPU, then prints final register state. It is the minimal
// host harness for the emulator, in the spirit of disassembler's own
// flag-driven main.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kelridge/sixfiveohtwo/c64"
	"github.com/kelridge/sixfiveohtwo/cpu"
)

var (
	offset  = flag.Int("offset", 0x0000, "address to load the program at")
	resetPC = flag.Int("reset_pc", -1, "PC to start execution at; defaults to offset")
	cmos    = flag.Bool("cmos", false, "treat unassigned opcodes as errors (CMOS) instead of NOPs (NMOS)")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-offset <addr>] [-reset_pc <addr>] [-cmos] <filename>", os.Args[0])
	}

	data, err := os.ReadFile(flag.Args()[0])
	if err != nil {
		log.Fatalf("can't open %s: %v", flag.Args()[0], err)
	}

	variant := cpu.VariantNMOS
	if *cmos {
		variant = cpu.VariantCMOS
	}

	pc := uint16(*offset)
	if *resetPC >= 0 {
		pc = uint16(*resetPC)
	}

	m := c64.New(nil, variant)
	if err := m.LoadProgram(data, uint16(*offset)); err != nil {
		log.Fatalf("can't load program: %v", err)
	}
	if err := m.LoadProgram([]byte{uint8(pc), uint8(pc >> 8)}, cpu.ResetVector); err != nil {
		log.Fatalf("can't set reset vector: %v", err)
	}
	if err := m.PowerOn(); err != nil {
		log.Fatalf("power on failed: %v", err)
	}

	fmt.Printf("loaded 0x%.4X bytes at 0x%.4X, starting at 0x%.4X\n", len(data), *offset, pc)
	if err := m.RunUntilBreak(); err != nil {
		log.Fatalf("run failed: %v", err)
	}

	c := m.CPU
	fmt.Printf("halted: A=%.2X X=%.2X Y=%.2X SP=%.2X PC=%.4X P=%.2X\n",
		c.A, c.X, c.Y, c.SP, c.PC, c.P.Byte())
}
