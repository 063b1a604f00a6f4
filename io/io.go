// Package io defines the basic interfaces for working with a 6502 family
// based I/O port (generally bi-directional). It's intended that
// implementors of I/O (such as a keyboard matrix or joystick) call the
// input callback (if provided) on every clock tick and properly account
// for the fact that output won't mirror input for a clock cycle (to
// account for latches being loaded).
package io

// Port8 defines an 8 bit I/O port.
type Port8 interface {
	// Input will return the current value being set on the given input port.
	Input() uint8
}

// Latch is a manually driven Port8, useful for test doubles and for any
// input source (a joystick, a keyboard matrix) whose state is simpler to
// set directly than to model as its own ticking device.
type Latch struct {
	value uint8
}

// Input implements Port8.
func (l *Latch) Input() uint8 { return l.value }

// Set changes the latched value.
func (l *Latch) Set(value uint8) { l.value = value }
