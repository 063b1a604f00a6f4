package irq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelDefaultsLow(t *testing.T) {
	var l Level
	assert.False(t, l.Raised())
}

func TestLevelSet(t *testing.T) {
	var l Level
	l.Set(true)
	assert.True(t, l.Raised())
	l.Set(false)
	assert.False(t, l.Raised())
}
