package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   int
		want Angle
	}{
		{0, 0},
		{4095, 4095},
		{4096, 0},
		{-1, 4095},
		{-2048, 2048},
		{9000, 808},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAngle(tt.in), "in=%d", tt.in)
	}
}

func TestTrigTables(t *testing.T) {
	assert.Equal(t, int32(TrigoFract), Cos[0])
	assert.Equal(t, int32(0), Sin[0])
	assert.Equal(t, int32(TrigoFract), Sin[Pi/2])
	assert.Equal(t, int32(-TrigoFract), Cos[Pi])
}

func TestHeadingOfAndReverse(t *testing.T) {
	assert.Equal(t, Angle(0), HeadingOf(1, 0))
	assert.Equal(t, Pi/2, HeadingOf(0, 1))
	assert.Equal(t, Pi, Angle(0).Reverse())
	assert.Equal(t, Angle(1024), Angle(3072).Reverse())
}

func TestProject(t *testing.T) {
	assert.InDelta(t, 10.0, Angle(0).Project(10, 5), 1e-9)
	assert.InDelta(t, 5.0, (Pi/2).Project(10, 5), 1e-9)
	assert.InDelta(t, math.Pi, Pi.Radians(), 1e-9)
}
