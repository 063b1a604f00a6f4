package memory

import "fmt"

// ErrUnmappedRead is returned when a read reaches no connected device. This is
// always fatal to the caller: a correctly assembled program never reads
// unmapped space.
type ErrUnmappedRead struct {
	Addr uint16
}

// Error implements the error interface.
func (e ErrUnmappedRead) Error() string {
	return fmt.Sprintf("unmapped read at 0x%.4X", e.Addr)
}

// ErrOutOfRange is returned by a bulk load that would run past the end of a
// device's backing buffer.
type ErrOutOfRange struct {
	Offset uint16
	Length int
	Size   int
}

// Error implements the error interface.
func (e ErrOutOfRange) Error() string {
	return fmt.Sprintf("load of %d bytes at offset 0x%.4X exceeds size %d", e.Length, e.Offset, e.Size)
}

// ErrDeviceOffsetUnderflow is returned by a device when asked to translate a
// global address below its own base, which indicates a bus misconfiguration
// rather than a bad program.
type ErrDeviceOffsetUnderflow struct {
	Addr uint16
	Base uint16
}

// Error implements the error interface.
func (e ErrDeviceOffsetUnderflow) Error() string {
	return fmt.Sprintf("address 0x%.4X is below device base 0x%.4X", e.Addr, e.Base)
}

// ErrNoFullConnection is returned by Bus.ReadSlice when no single connection
// fully contains the requested range.
type ErrNoFullConnection struct {
	Lo, Hi uint16
}

// Error implements the error interface.
func (e ErrNoFullConnection) Error() string {
	return fmt.Sprintf("no single connection covers [0x%.4X, 0x%.4X]", e.Lo, e.Hi)
}
