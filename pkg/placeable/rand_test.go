package placeable

import "math/rand"

// newTestRand gives every test its own seeded stream so results are
// reproducible without sharing state across parallel tests.
func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
