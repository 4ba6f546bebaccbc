package placeable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader(anchor Point) Header {
	return Header{ID: "x", Rank: 1, Buffer: 2, Anchor: anchor}
}

// TestCityPlacementEnergyTable checks each of the 13 tags against the exact
// tabulated cultural-preference cost.
func TestCityPlacementEnergyTable(t *testing.T) {
	want := map[Tag]float64{
		NE: 0.000, ENE: 0.070, ESE: 0.100, SE: 0.175, SSE: 0.200,
		S: 0.900, SW: 0.600, WSW: 0.500, WNW: 0.470, NW: 0.400,
		NNW: 0.575, N: 0.800, NNE: 0.150,
	}
	require.Len(t, want, int(tagCount))

	for tag, energy := range want {
		c := NewCity(testHeader(Point{}), 40, 10)
		c.placement = tag
		assert.InDelta(t, energy, c.PlacementEnergy(), 1e-9, "tag %v", tag)
	}
}

// TestCityGeometricOffsets checks each of the 13 label-rect offsets to the
// tolerance named in the spec.
func TestCityGeometricOffsets(t *testing.T) {
	const w, h = 40.0, 10.0
	const r = pointMarkerRadius
	anchor := Point{X: 100, Y: 200}

	cases := []struct {
		tag    Tag
		wantX  float64
		wantY  float64
	}{
		{NE, anchor.X + r + w/2, anchor.Y - h/2},
		{SE, anchor.X + r + w/2, anchor.Y + h/2},
		{NW, anchor.X - (r + w/2), anchor.Y - h/2},
		{SW, anchor.X - (r + w/2), anchor.Y + h/2},
		{ENE, anchor.X + r + w/2, anchor.Y - h/6},
		{ESE, anchor.X + r + w/2, anchor.Y + h/6},
		{WNW, anchor.X - (r + w/2), anchor.Y - h/6},
		{WSW, anchor.X - (r + w/2), anchor.Y + h/6},
		{N, anchor.X, anchor.Y - (r + h/2)},
		{S, anchor.X, anchor.Y + (r + h/2)},
		{NNE, anchor.X + r*math.Cos(math.Pi/4) + w/2, anchor.Y - (r*math.Sin(math.Pi/4) + h/2)},
		{NNW, anchor.X - (r*math.Cos(math.Pi/4) + w/2), anchor.Y - (r*math.Sin(math.Pi/4) + h/2)},
		{SSE, anchor.X + r*math.Cos(math.Pi/4) + w/2, anchor.Y + (r*math.Sin(math.Pi/4) + h/2)},
	}

	for _, tc := range cases {
		c := NewCity(testHeader(anchor), w, h)
		c.placement = tc.tag
		cx, cy := c.LabelRect().Center()
		assert.InDelta(t, tc.wantX, cx, 1e-6, "tag %v x", tc.tag)
		assert.InDelta(t, tc.wantY, cy, 1e-6, "tag %v y", tc.tag)
	}
}

func TestCityMaskIncludesPointMarker(t *testing.T) {
	c := NewCity(testHeader(Point{X: 0, Y: 0}), 40, 10)
	mask := c.MaskRect()
	// The point marker square must be fully inside the union mask.
	assert.LessOrEqual(t, mask.MinX, -pointMarkerRadius)
	assert.LessOrEqual(t, mask.MinY, -pointMarkerRadius)
	assert.GreaterOrEqual(t, mask.MaxX, pointMarkerRadius)
	assert.GreaterOrEqual(t, mask.MaxY, pointMarkerRadius)
}

func TestCityMoveStaysInTagSet(t *testing.T) {
	c := NewCity(testHeader(Point{}), 40, 10)
	rng := newTestRand(1)
	for i := 0; i < 200; i++ {
		c.Move(rng)
		assert.True(t, c.placement >= NE && c.placement < tagCount)
	}
}

func TestCitySnapshotRestore(t *testing.T) {
	c := NewCity(testHeader(Point{}), 40, 10)
	c.placement = SW
	snap := c.Snapshot()
	c.placement = N
	c.Restore(snap)
	assert.Equal(t, SW, c.placement)
}
