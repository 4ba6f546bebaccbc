package placeable

import (
	"math/rand"

	"github.com/ajturner/acetate/pkg/geom"
)

// pointMarkerRadius is the pixel radius of a city's point marker, used both
// for the visible dot and as part of its mask.
const pointMarkerRadius = 4.0

// City is a low-zoom (zoom <= 8) city. Its label sits at one of 13 discrete
// compass placements relative to a fixed-radius point marker.
type City struct {
	hdr Header

	width, height int // measured label size, fixed at construction
	placement     Tag
}

type citySnapshot struct {
	placement Tag
}

// NewCity constructs a City with its label measured and placement defaulted
// to NE, matching the reference implementation's initial state.
func NewCity(hdr Header, width, height int) *City {
	hdr.Category = CategoryCity
	return &City{hdr: hdr, width: width, height: height, placement: NE}
}

func (c *City) Header() *Header { return &c.hdr }

// Placement returns the city's current discrete label position.
func (c *City) Placement() Tag { return c.placement }

func (c *City) pointRect() geom.Rect {
	x, y := c.hdr.Anchor.X, c.hdr.Anchor.Y
	return geom.NewRect(x-pointMarkerRadius, y-pointMarkerRadius, x+pointMarkerRadius, y+pointMarkerRadius)
}

func (c *City) LabelRect() geom.Rect {
	dx, dy := labelOffset(c.placement, pointMarkerRadius, float64(c.width), float64(c.height))
	cx := c.hdr.Anchor.X + dx
	cy := c.hdr.Anchor.Y + dy
	return geom.RectCentered(cx, cy, float64(c.width), float64(c.height))
}

func (c *City) MaskRect() geom.Rect {
	return c.LabelRect().Inflate(c.hdr.Buffer).Union(c.pointRect())
}

func (c *City) RangeRadius() float64 {
	return pointMarkerRadius + geom.Hypot(float64(c.width)+2*c.hdr.Buffer, float64(c.height)+2*c.hdr.Buffer)
}

func (c *City) Move(rng *rand.Rand) {
	c.placement = Tag(rng.Intn(int(tagCount)))
}

func (c *City) PlacementEnergy() float64 {
	return tagEnergy[c.placement]
}

func (c *City) Snapshot() Snapshot {
	return citySnapshot{c.placement}
}

func (c *City) Restore(s Snapshot) {
	c.placement = s.(citySnapshot).placement
}
