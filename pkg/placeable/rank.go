package placeable

// These offsets are magic numbers tied to the tabulated zoom values in the
// input data (the biggest countries first appear at z3, the biggest cities
// at z4) and are preserved verbatim from the reference implementation.
const (
	countryRankZoomOffset = 2
	cityRankZoomOffset    = 3

	// MoveableZoomGate is the zoom threshold at or below which a placeable
	// is eligible for mutation by the annealer; placeables introduced at a
	// higher zoom are locked in place.
	MoveableZoomGate = 7
)

// CountryRank computes a country's fixed rank from its tabulated zoom.
func CountryRank(zoom int) int { return zoom - countryRankZoomOffset }

// CityRank computes a city's fixed rank from its tabulated zoom.
func CityRank(zoom int) int { return zoom - cityRankZoomOffset }
