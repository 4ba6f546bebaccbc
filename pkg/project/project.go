// Package project converts between geographic coordinates and the pixel
// space the placement engine works in: a web Mercator tile grid at a fixed
// zoom level, each tile 256 pixels square. Depends on paulmach/orb's
// maptile package for the Mercator math.
package project

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// tileSize is the standard web-Mercator tile edge length in pixels.
const tileSize = 256

// Projector maps lat/lon to pixel coordinates at a fixed zoom, and back.
// Zero value is not usable; construct with NewProjector.
type Projector struct {
	zoom maptile.Zoom
}

// NewProjector builds a Projector for the given integer web-Mercator zoom
// level (0 is the whole world in one 256px tile).
func NewProjector(zoom int) Projector {
	return Projector{zoom: maptile.Zoom(zoom)}
}

// Project converts a geographic point to pixel coordinates in the
// projector's zoom level, counting from the map's top-left corner.
func (p Projector) Project(lat, lon float64) (x, y float64) {
	fx, fy := maptile.Fraction(orb.Point{lon, lat}, p.zoom)
	return fx * tileSize, fy * tileSize
}

// Unproject converts pixel coordinates back to a geographic point, the
// inverse of the web-Mercator fraction formula Project applies.
func (p Projector) Unproject(x, y float64) (lat, lon float64) {
	factor := math.Exp2(float64(p.zoom))
	fx := x / tileSize
	fy := y / tileSize

	lon = fx/factor*360.0 - 180.0
	n := math.Pi - 2*math.Pi*fy/factor
	lat = 180.0 / math.Pi * math.Atan(math.Sinh(n))
	return lat, lon
}

// PixelZoom is the effective tile-pixel zoom level used for font-size and
// distance calculations that want sub-tile precision (zoom plus the
// 2^8 = 256px tile edge expressed as 8 extra bits of zoom).
func (p Projector) PixelZoom() float64 {
	return float64(p.zoom) + 8
}
