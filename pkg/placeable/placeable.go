// Package placeable implements the geometric model of each kind of labeled
// map feature: Country, City, and HighZoomCity. Each variant owns its own
// placement state and knows how to mutate it, cost it, and test it for
// overlap against any other placeable. Depends only on pkg/geom.
package placeable

import (
	"math/rand"

	"github.com/ajturner/acetate/pkg/geom"
)

// Category distinguishes the two top-level feature kinds used for sort
// ordering in the resolver (countries sort before cities).
type Category int

const (
	CategoryCountry Category = iota
	CategoryCity
)

// Location preserves the geographic coordinate a placeable was built from,
// for output purposes only; the engine never recomputes it.
type Location struct {
	Lat float64
	Lon float64
}

// Point is a pixel-space anchor, produced by the projection collaborator.
type Point struct {
	X float64
	Y float64
}

// Snapshot is an opaque, variant-specific capture of mutable placement
// state, compact enough to copy cheaply before a proposed move so the
// annealer can roll it back on rejection without cloning the whole
// placeable.
type Snapshot any

// Header holds the fields common to every Placeable variant. Identity,
// rank, zoom threshold, anchor, and geographic location are immutable
// after construction; only the variant-specific placement state (held in
// each concrete type) is mutated.
type Header struct {
	ID            string
	Name          string
	Abbreviation  string
	GeonameID     string
	Population    *int // nil means "unknown"
	Category      Category
	Rank          int
	ZoomThreshold int
	Anchor        Point
	Location      Location
	Buffer        float64
}

// Placeable is the capability set every variant (Country, City,
// HighZoomCity) implements. It replaces class inheritance with a shared
// interface over a tagged set of concrete types.
type Placeable interface {
	// Header returns the placeable's immutable common fields.
	Header() *Header

	// LabelRect is the current label bounding box in pixel space. It is a
	// pure function of the anchor, placement state, and measured text size.
	LabelRect() geom.Rect

	// MaskRect is the collision footprint: LabelRect inflated by Buffer,
	// unioned (for City) with the point-marker rect.
	MaskRect() geom.Rect

	// RangeRadius is an upper bound on the distance from the anchor the
	// mask can ever reach, used to build the symmetric InRange test.
	RangeRadius() float64

	// Move mutates the placement state using the variant's random
	// proposal, pulling all stochastic choices from rng in a fixed order.
	Move(rng *rand.Rand)

	// PlacementEnergy is the nonnegative scalar cost of the current
	// placement state alone.
	PlacementEnergy() float64

	// Snapshot captures the mutable placement state so a rejected move
	// can be rolled back with Restore.
	Snapshot() Snapshot

	// Restore reinstates a previously captured Snapshot.
	Restore(Snapshot)
}

// InRange reports whether a and b are close enough that their masks could
// ever overlap, i.e. their anchors are within the sum of their maximum
// possible mask radii. Symmetric by construction.
func InRange(a, b Placeable) bool {
	ah, bh := a.Header(), b.Header()
	d := geom.Distance(ah.Anchor.X, ah.Anchor.Y, bh.Anchor.X, bh.Anchor.Y)
	return d <= a.RangeRadius()+b.RangeRadius()
}

// Overlaps reports whether a's mask intersects b's label, or b's mask
// intersects a's label. Symmetric under this OR by construction.
func Overlaps(a, b Placeable) bool {
	return a.MaskRect().Intersects(b.LabelRect()) || b.MaskRect().Intersects(a.LabelRect())
}

// OverlapEnergy is the pairwise overlap cost shared by every variant: zero
// when the two placeables don't overlap, otherwise the overlap penalty
// favors not hiding the higher-ranked (lower rank number) placeable.
func OverlapEnergy(a, b Placeable) float64 {
	if !Overlaps(a, b) {
		return 0
	}
	ra, rb := float64(a.Header().Rank), float64(b.Header().Rank)
	return min(10/ra, 10/rb)
}

// uniform draws a float64 uniformly in [-fullRange/2, +fullRange/2).
func uniform(rng *rand.Rand, fullRange float64) float64 {
	return (rng.Float64() - 0.5) * fullRange
}
