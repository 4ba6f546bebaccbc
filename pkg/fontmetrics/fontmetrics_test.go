package fontmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedFloatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, 12.5, 96, 0.015625} {
		assert.InDelta(t, v, fixedToFloat(fixedFromFloat(v)), 1e-6)
	}
}

func TestParseFaceRejectsGarbage(t *testing.T) {
	_, err := ParseFace([]byte("not a font"), 12)
	assert.Error(t, err)
}
