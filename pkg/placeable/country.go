package placeable

import (
	"math/rand"

	"github.com/ajturner/acetate/pkg/geom"
)

// Country places its label centered on the anchor, choosing between an
// abbreviation and the full name, and nudging the label within a box
// bounded by half its own size.
type Country struct {
	hdr Header

	landAreaKM2 float64

	minWidth, minHeight int // abbreviation label size
	maxWidth, maxHeight int // full-name label size

	useAbbreviation bool
	offsetX         float64
	offsetY         float64
}

type countrySnapshot struct {
	useAbbreviation bool
	offsetX, offsetY float64
}

// NewCountry constructs a Country at its anchor with both candidate label
// sizes already measured (abbreviation and full name).
func NewCountry(hdr Header, landAreaKM2 float64, minWidth, minHeight, maxWidth, maxHeight int) *Country {
	hdr.Category = CategoryCountry
	return &Country{
		hdr:         hdr,
		landAreaKM2: landAreaKM2,
		minWidth:    minWidth,
		minHeight:   minHeight,
		maxWidth:    maxWidth,
		maxHeight:   maxHeight,
	}
}

// LandAreaKM2 returns the country's tabulated land area, preserved from input.
func (c *Country) LandAreaKM2() float64 { return c.landAreaKM2 }

// DisplayName returns the abbreviation or full name depending on current state.
func (c *Country) DisplayName() string {
	if c.useAbbreviation {
		return c.hdr.Abbreviation
	}
	return c.hdr.Name
}

func (c *Country) Header() *Header { return &c.hdr }

func (c *Country) currentSize() (w, h float64) {
	if c.useAbbreviation {
		return float64(c.minWidth), float64(c.minHeight)
	}
	return float64(c.maxWidth), float64(c.maxHeight)
}

func (c *Country) LabelRect() geom.Rect {
	w, h := c.currentSize()
	cx := c.hdr.Anchor.X + c.offsetX
	cy := c.hdr.Anchor.Y + c.offsetY
	return geom.RectCentered(cx, cy, w, h)
}

func (c *Country) MaskRect() geom.Rect {
	return c.LabelRect().Inflate(c.hdr.Buffer)
}

func (c *Country) RangeRadius() float64 {
	return geom.Hypot(float64(c.maxWidth)+2*c.hdr.Buffer, float64(c.maxHeight)+2*c.hdr.Buffer)
}

func (c *Country) Move(rng *rand.Rand) {
	c.useAbbreviation = rng.Float64() < 0.5
	w, h := c.currentSize()
	c.offsetX = uniform(rng, w)
	c.offsetY = uniform(rng, h)
}

// PlacementEnergy reproduces the original's asymmetric normalization
// verbatim: both the x and y offset components are divided by the label
// width, never the height. This is preserved intentionally; see DESIGN.md.
func (c *Country) PlacementEnergy() float64 {
	w, _ := c.currentSize()
	x := 2 * c.offsetX / w
	y := 2 * c.offsetY / w
	abbr := 0.0
	if c.useAbbreviation {
		abbr = 1
	}
	return abbr + x*x + y*y
}

func (c *Country) Snapshot() Snapshot {
	return countrySnapshot{c.useAbbreviation, c.offsetX, c.offsetY}
}

func (c *Country) Restore(s Snapshot) {
	snap := s.(countrySnapshot)
	c.useAbbreviation = snap.useAbbreviation
	c.offsetX = snap.offsetX
	c.offsetY = snap.offsetY
}
