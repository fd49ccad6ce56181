package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, SafeDiv(10, 5))
	assert.Equal(t, 0.0, SafeDiv(10, 0))
	assert.Equal(t, 0.0, SafeDiv(10, 1e-13))
	assert.InDelta(t, -2.0, SafeDiv(10, -5), 1e-12)
}

func TestFmtFloat(t *testing.T) {
	assert.Equal(t, "0.658600", FmtFloat(0.6586))
	assert.Equal(t, "1000.000000", FmtFloat(1000))
}
