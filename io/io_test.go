package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatchDefaultsZero(t *testing.T) {
	var l Latch
	assert.Equal(t, uint8(0), l.Input())
}

func TestLatchSet(t *testing.T) {
	var l Latch
	l.Set(0x42)
	assert.Equal(t, uint8(0x42), l.Input())
}
