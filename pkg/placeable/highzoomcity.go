package placeable

import (
	"math/rand"

	"github.com/ajturner/acetate/pkg/geom"
)

// HighZoomCity is a city at zoom >= 9: like Country, but always uses its
// full name (no abbreviation), with a continuous offset bounded by half the
// label's own size.
type HighZoomCity struct {
	hdr Header

	width, height int
	offsetX       float64
	offsetY       float64
}

type highZoomSnapshot struct {
	offsetX, offsetY float64
}

// NewHighZoomCity constructs a HighZoomCity with its label already measured.
func NewHighZoomCity(hdr Header, width, height int) *HighZoomCity {
	hdr.Category = CategoryCity
	return &HighZoomCity{hdr: hdr, width: width, height: height}
}

func (c *HighZoomCity) Header() *Header { return &c.hdr }

func (c *HighZoomCity) LabelRect() geom.Rect {
	cx := c.hdr.Anchor.X + c.offsetX
	cy := c.hdr.Anchor.Y + c.offsetY
	return geom.RectCentered(cx, cy, float64(c.width), float64(c.height))
}

func (c *HighZoomCity) MaskRect() geom.Rect {
	return c.LabelRect().Inflate(c.hdr.Buffer)
}

func (c *HighZoomCity) RangeRadius() float64 {
	return geom.Hypot(float64(c.width)+2*c.hdr.Buffer, float64(c.height)+2*c.hdr.Buffer)
}

func (c *HighZoomCity) Move(rng *rand.Rand) {
	c.offsetX = uniform(rng, float64(c.width))
	c.offsetY = uniform(rng, float64(c.height))
}

// PlacementEnergy mirrors Country's formula: both offset components are
// normalized by width, never height. Verbatim from the reference
// implementation; see DESIGN.md.
func (c *HighZoomCity) PlacementEnergy() float64 {
	x := 2 * c.offsetX / float64(c.width)
	y := 2 * c.offsetY / float64(c.width)
	return x*x + y*y
}

func (c *HighZoomCity) Snapshot() Snapshot {
	return highZoomSnapshot{c.offsetX, c.offsetY}
}

func (c *HighZoomCity) Restore(s Snapshot) {
	snap := s.(highZoomSnapshot)
	c.offsetX = snap.offsetX
	c.offsetY = snap.offsetY
}
