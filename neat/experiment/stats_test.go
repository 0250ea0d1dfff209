package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatsBasicStats(t *testing.T) {
	x := Floats{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, x.Min())
	assert.Equal(t, 5.0, x.Max())
	assert.Equal(t, 15.0, x.Sum())
	assert.Equal(t, 3.0, x.Mean())
	assert.Equal(t, 3.0, x.Median())
}

func TestFloatsEmptyIsZero(t *testing.T) {
	var x Floats
	assert.Equal(t, 0.0, x.Min())
	assert.Equal(t, 0.0, x.Max())
	assert.Equal(t, 0.0, x.Mean())
	assert.Equal(t, 0.0, x.StdDev())
	assert.Equal(t, 0.0, x.Median())
}
