// debugserver runs a c64.Machine in the background until a Tick fails
// (a BRK does not stop it) and
// exposes its debugsnap.Hub over plain-text HTTP, grounded in
// original_source/src/debug_server.rs's path-routed request/response loop
// (ported from its raw TCP listener to net/http, in the style of the
// pprof-over-http wiring the teacher's vcs command used). No JSON: each
// endpoint returns a plain-text body, matching debugsnap's non-goal of a
// wire format.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/kelridge/sixfiveohtwo/c64"
	"github.com/kelridge/sixfiveohtwo/cpu"
	"github.com/kelridge/sixfiveohtwo/debugsnap"
	"github.com/kelridge/sixfiveohtwo/disassemble"
	"github.com/kelridge/sixfiveohtwo/vic"
)

var (
	addr   = flag.String("addr", "127.0.0.1:7878", "address to serve the debug endpoints on")
	offset = flag.Int("offset", 0x0000, "address to load the program at")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("usage: %s [-addr host:port] [-offset <addr>] <filename>", os.Args[0])
	}

	data, err := os.ReadFile(flag.Args()[0])
	if err != nil {
		log.Fatalf("can't open %s: %v", flag.Args()[0], err)
	}

	m := c64.New(nil, cpu.VariantNMOS)
	if err := m.LoadProgram(data, uint16(*offset)); err != nil {
		log.Fatalf("can't load program: %v", err)
	}
	pc := uint16(*offset)
	if err := m.LoadProgram([]byte{uint8(pc), uint8(pc >> 8)}, cpu.ResetVector); err != nil {
		log.Fatalf("can't set reset vector: %v", err)
	}
	if err := m.PowerOn(); err != nil {
		log.Fatalf("power on failed: %v", err)
	}

	hub := debugsnap.NewHub()
	go runLoop(m, hub)

	http.HandleFunc("/get_cpu_state", func(w http.ResponseWriter, r *http.Request) {
		snap, err := hub.Request(debugsnap.Request{Kind: debugsnap.RequestCPUState})
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, "A=%.2X X=%.2X Y=%.2X SP=%.2X PC=%.4X P=%.2X\n",
			snap.CPU.A, snap.CPU.X, snap.CPU.Y, snap.CPU.SP, snap.CPU.PC, snap.CPU.P)
	})

	http.HandleFunc("/memory", func(w http.ResponseWriter, r *http.Request) {
		lo, hi := parseRange(r)
		snap, err := hub.Request(debugsnap.Request{Kind: debugsnap.RequestMemory, Lo: lo, Hi: hi})
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		for i, b := range snap.Memory {
			fmt.Fprintf(w, "%.4X %.2X\n", int(lo)+i, b)
		}
	})

	http.HandleFunc("/dissasembly", func(w http.ResponseWriter, r *http.Request) {
		pc := parseUint16(r, "pc", 0)
		count := parseInt(r, "count", 16)
		snap, err := hub.Request(debugsnap.Request{Kind: debugsnap.RequestDisassembly, PC: pc, Count: count})
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		for _, line := range snap.Disassembly {
			fmt.Fprintln(w, line)
		}
	})

	http.HandleFunc("/get_vic_state", func(w http.ResponseWriter, r *http.Request) {
		snap, err := hub.Request(debugsnap.Request{Kind: debugsnap.RequestVICState})
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		for i, b := range snap.Memory {
			fmt.Fprintf(w, "%.4X %.2X\n", i, b)
		}
	})

	log.Printf("debug server opened at http://%s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

// runLoop advances the machine and answers one pending debug request per
// tick, matching the "poll once per frame" contract debugsnap.Hub is built
// around.
func runLoop(m *c64.Machine, hub *debugsnap.Hub) {
	for {
		if err := m.CPU.Tick(m.Bus); err != nil {
			log.Printf("machine halted: %v", err)
			return
		}
		m.Bus.Tick()

		req, ok := hub.Poll()
		if !ok {
			continue
		}
		hub.Respond(answer(m, req))
	}
}

func answer(m *c64.Machine, req debugsnap.Request) debugsnap.Snapshot {
	c := m.CPU
	switch req.Kind {
	case debugsnap.RequestCPUState:
		return debugsnap.Snapshot{CPU: debugsnap.CPUState{
			A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, P: c.P.Byte(),
		}}
	case debugsnap.RequestMemory:
		mem, err := m.Bus.ReadSlice(req.Lo, req.Hi)
		if err != nil {
			return debugsnap.Snapshot{}
		}
		return debugsnap.Snapshot{Memory: mem}
	case debugsnap.RequestDisassembly:
		return debugsnap.Snapshot{Disassembly: disassemble.Listing(req.PC, req.Count, m.Bus)}
	case debugsnap.RequestVICState:
		lo := vic.Base
		hi := vic.Base + uint16(m.VIC.Size()) - 1
		mem, err := m.VIC.ReadSlice(lo, hi)
		if err != nil {
			return debugsnap.Snapshot{}
		}
		return debugsnap.Snapshot{Memory: mem}
	default:
		return debugsnap.Snapshot{}
	}
}

func parseRange(r *http.Request) (uint16, uint16) {
	return parseUint16(r, "lo", 0), parseUint16(r, "hi", 0xFF)
}

func parseUint16(r *http.Request, key string, def uint16) uint16 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 16, 16)
	if err != nil {
		return def
	}
	return uint16(n)
}

func parseInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
