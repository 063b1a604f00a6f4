// Package memory defines the bus fabric that routes a 6502's reads and
// writes to the memory-mapped devices attached to it, along with the
// Device capability every attached unit must implement.
package memory

// Device is the capability every unit attached to a Bus implements.
// Addresses passed to Read/Write are global bus addresses; a Device is
// responsible for translating them to its own local offset (e.g. a device
// based at 0xB000 subtracts that before indexing its own buffer).
type Device interface {
	// Read returns the byte stored at the given global address.
	Read(addr uint16) uint8
	// Write stores val at the given global address.
	Write(addr uint16, val uint8)
	// Tick advances the device by one clock. Devices that have no internal
	// state to advance (plain RAM) may implement this as a no-op.
	Tick()
	// ReadSlice returns the bytes in [lo, hi], both inclusive, as seen
	// through this device's own address translation.
	ReadSlice(lo, hi uint16) ([]byte, error)
}
