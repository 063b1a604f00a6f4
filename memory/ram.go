package memory

// RAM is a fixed-size, byte-addressed buffer implementing Device. It is
// always mapped starting at global address 0, so reads and writes index
// directly by the address given.
type RAM struct {
	mem []uint8
}

// NewRAM allocates a RAM device of the given size, zero-filled.
func NewRAM(size int) *RAM {
	return &RAM{mem: make([]uint8, size)}
}

// Read implements Device.
func (r *RAM) Read(addr uint16) uint8 {
	return r.mem[addr]
}

// Write implements Device.
func (r *RAM) Write(addr uint16, val uint8) {
	r.mem[addr] = val
}

// Tick implements Device. RAM has no internal state to advance.
func (r *RAM) Tick() {}

// ReadSlice implements Device.
func (r *RAM) ReadSlice(lo, hi uint16) ([]byte, error) {
	if int(hi) >= len(r.mem) || lo > hi {
		return nil, ErrOutOfRange{Offset: lo, Length: int(hi-lo) + 1, Size: len(r.mem)}
	}
	out := make([]byte, int(hi-lo)+1)
	copy(out, r.mem[lo:int(hi)+1])
	return out, nil
}

// Load bulk-copies data into the buffer starting at offset. It fails with
// ErrOutOfRange if the span would run past the end of the buffer, leaving the
// buffer untouched.
func (r *RAM) Load(data []byte, offset uint16) error {
	if int(offset)+len(data) > len(r.mem) {
		return ErrOutOfRange{Offset: offset, Length: len(data), Size: len(r.mem)}
	}
	copy(r.mem[offset:], data)
	return nil
}

// Size returns the number of addressable bytes in the buffer.
func (r *RAM) Size() int {
	return len(r.mem)
}
