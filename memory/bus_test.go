package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusReadFirstMatchWins(t *testing.T) {
	b := NewBus()
	a := NewRAM(16)
	c := NewRAM(16)
	require.NoError(t, a.Load([]byte{0xAA}, 0))
	require.NoError(t, c.Load([]byte{0xCC}, 0))
	// Two overlapping connections at the same range: read must return the
	// first one registered.
	b.Connect(a, 0, 15)
	b.Connect(c, 0, 15)

	got, err := b.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAA), got)
}

func TestBusWriteReachesAllMatches(t *testing.T) {
	b := NewBus()
	a := NewRAM(16)
	c := NewRAM(16)
	b.Connect(a, 0, 15)
	b.Connect(c, 0, 15)

	b.Write(0, 0x42)

	assert.Equal(t, uint8(0x42), a.Read(0))
	assert.Equal(t, uint8(0x42), c.Read(0))
}

func TestBusUnmappedReadFails(t *testing.T) {
	b := NewBus()
	_, err := b.Read(0x1234)
	require.Error(t, err)
	var unmapped ErrUnmappedRead
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, uint16(0x1234), unmapped.Addr)
}

func TestBusUnmappedWriteIsNoop(t *testing.T) {
	b := NewBus()
	// Must not panic with no connections registered.
	b.Write(0x1234, 0xFF)
}

func TestBusReadU16LE(t *testing.T) {
	b := NewBus()
	r := NewRAM(16)
	require.NoError(t, r.Load([]byte{0x34, 0x12}, 0))
	b.Connect(r, 0, 15)

	got, err := b.ReadU16LE(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got)
}

func TestBusReadSliceDelegatesToFullyContainingConnection(t *testing.T) {
	b := NewBus()
	lo := NewRAM(16)
	hi := NewRAM(16)
	require.NoError(t, lo.Load([]byte{1, 2, 3, 4}, 0))
	b.Connect(lo, 0, 15)
	b.Connect(hi, 16, 31)

	got, err := b.ReadSlice(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)

	_, err = b.ReadSlice(10, 20)
	require.Error(t, err)
}

func TestBusTickAdvancesAllDevices(t *testing.T) {
	b := NewBus()
	d1 := &tickCounter{}
	d2 := &tickCounter{}
	b.Connect(d1, 0, 0)
	b.Connect(d2, 1, 1)

	b.Tick()
	b.Tick()

	assert.Equal(t, 2, d1.n)
	assert.Equal(t, 2, d2.n)
}

// tickCounter is a minimal Device used only to observe Tick ordering.
type tickCounter struct{ n int }

func (t *tickCounter) Read(addr uint16) uint8                  { return 0 }
func (t *tickCounter) Write(addr uint16, val uint8)            {}
func (t *tickCounter) Tick()                                   { t.n++ }
func (t *tickCounter) ReadSlice(lo, hi uint16) ([]byte, error) { return nil, nil }
