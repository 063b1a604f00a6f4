package monitor

// Cell records one SetSymbol call, keyed by position.
type Cell struct {
	Symbol rune
	Color  Color
}

// NullMonitor is the dependency-free Monitor test double used by vic and
// c64 tests. It records every write instead of rendering it.
type NullMonitor struct {
	Cells  map[[2]uint16]Cell
	Clears int
}

// NewNullMonitor returns a ready-to-use NullMonitor.
func NewNullMonitor() *NullMonitor {
	return &NullMonitor{Cells: make(map[[2]uint16]Cell)}
}

// Clear implements Monitor.
func (m *NullMonitor) Clear() {
	m.Clears++
	m.Cells = make(map[[2]uint16]Cell)
}

// SetSymbol implements Monitor.
func (m *NullMonitor) SetSymbol(x, y uint16, symbol rune, color Color) {
	m.Cells[[2]uint16{x, y}] = Cell{Symbol: symbol, Color: color}
}
