// Package places owns the full population of placeables being arranged: it
// maintains the neighbor index (pairs whose masks could ever overlap) and
// the running global energy that the annealer minimizes. Depends only on
// pkg/placeable.
package places

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ajturner/acetate/pkg/placeable"
)

// ErrEmptyPopulation is returned by Move when there are no moveable
// placeables to choose from; the annealer treats this as a fatal setup
// error.
var ErrEmptyPopulation = errors.New("places: no moveable placeables")

// ErrEnergyInvariant indicates the cached running energy has drifted from a
// fresh recomputation beyond tolerance. Used by tests and CheckInvariant.
var ErrEnergyInvariant = errors.New("places: cached energy does not match recomputation")

// Places owns the ordered list of placeables, their neighbor sets, and the
// running total energy. It is mutated only by Add (during construction)
// and by Move, Undo and RestoreAll (during annealing).
type Places struct {
	all       []placeable.Placeable
	moveable  []placeable.Placeable
	neighbors map[placeable.Placeable][]placeable.Placeable
	energy    float64
}

// New creates an empty Places collection.
func New() *Places {
	return &Places{
		neighbors: make(map[placeable.Placeable][]placeable.Placeable),
	}
}

// All returns every placeable added so far, in insertion order.
func (p *Places) All() []placeable.Placeable { return p.all }

// Neighbors returns p's neighbor set, the set of placeables it could ever
// overlap given both anchors are fixed.
func (p *Places) Neighbors(pl placeable.Placeable) []placeable.Placeable {
	return p.neighbors[pl]
}

// Add inserts a placeable, wiring it into the neighbor index against every
// placeable already present, and folding its placement and overlap energy
// into the running total. Returns its neighbor set for diagnostics.
func (p *Places) Add(pl placeable.Placeable) []placeable.Placeable {
	for _, other := range p.all {
		if !placeable.InRange(pl, other) {
			continue
		}
		p.energy += placeable.OverlapEnergy(pl, other)
		p.neighbors[pl] = append(p.neighbors[pl], other)
		p.neighbors[other] = append(p.neighbors[other], pl)
	}

	p.energy += pl.PlacementEnergy()
	p.all = append(p.all, pl)

	if pl.Header().ZoomThreshold <= placeable.MoveableZoomGate {
		p.moveable = append(p.moveable, pl)
	}

	return p.neighbors[pl]
}

// Energy returns the cached running total in O(1).
func (p *Places) Energy() float64 {
	return p.energy
}

// Move picks a moveable placeable uniformly at random, proposes a move for
// it, and updates the running energy incrementally. Neighbor sets are never
// recomputed: the InRange bound is constructed to stay valid over every
// reachable placement. Returns the moved placeable and a snapshot the
// caller can use to undo the move, or ErrEmptyPopulation if there is
// nothing to move.
func (p *Places) Move(rng *rand.Rand) (placeable.Placeable, placeable.Snapshot, error) {
	if len(p.moveable) == 0 {
		return nil, nil, ErrEmptyPopulation
	}

	pl := p.moveable[rng.Intn(len(p.moveable))]
	neighbors := p.neighbors[pl]

	for _, other := range neighbors {
		p.energy -= placeable.OverlapEnergy(pl, other)
	}
	p.energy -= pl.PlacementEnergy()

	snap := pl.Snapshot()
	pl.Move(rng)

	for _, other := range neighbors {
		p.energy += placeable.OverlapEnergy(pl, other)
	}
	p.energy += pl.PlacementEnergy()

	return pl, snap, nil
}

// Undo restores pl to the placement state captured by snap and repairs the
// running energy to match, mirroring the bookkeeping Move performed when it
// applied the move being undone.
func (p *Places) Undo(pl placeable.Placeable, snap placeable.Snapshot) {
	neighbors := p.neighbors[pl]

	for _, other := range neighbors {
		p.energy -= placeable.OverlapEnergy(pl, other)
	}
	p.energy -= pl.PlacementEnergy()

	pl.Restore(snap)

	for _, other := range neighbors {
		p.energy += placeable.OverlapEnergy(pl, other)
	}
	p.energy += pl.PlacementEnergy()
}

// Moveable returns the placeables eligible for mutation at the current zoom.
func (p *Places) Moveable() []placeable.Placeable { return p.moveable }

// SnapshotAll captures every placeable's current placement, keyed by ID.
// Used by the annealer to remember the best population-wide arrangement
// seen during a run without retaining the placeables themselves.
func (p *Places) SnapshotAll() map[string]placeable.Snapshot {
	snaps := make(map[string]placeable.Snapshot, len(p.all))
	for _, pl := range p.all {
		snaps[pl.Header().ID] = pl.Snapshot()
	}
	return snaps
}

// RestoreAll reinstates every placeable to the placement captured by a prior
// SnapshotAll and resums the running energy from scratch.
func (p *Places) RestoreAll(snaps map[string]placeable.Snapshot) {
	for _, pl := range p.all {
		if snap, ok := snaps[pl.Header().ID]; ok {
			pl.Restore(snap)
		}
	}
	p.energy = p.Recompute()
}

// Recompute returns the energy freshly summed from scratch, for tests and
// debug-build invariant checks; it never mutates p.
func (p *Places) Recompute() float64 {
	total := 0.0
	seen := make(map[string]bool)
	for _, pl := range p.all {
		total += pl.PlacementEnergy()
		for _, other := range p.neighbors[pl] {
			key := pairKey(pl, other)
			if seen[key] {
				continue
			}
			seen[key] = true
			total += placeable.OverlapEnergy(pl, other)
		}
	}
	return total
}

func pairKey(a, b placeable.Placeable) string {
	ai, bi := a.Header().ID, b.Header().ID
	if ai < bi {
		return ai + "\x00" + bi
	}
	return bi + "\x00" + ai
}

// CheckInvariant reports ErrEnergyInvariant if the cached energy has
// drifted from a fresh recomputation beyond the given relative tolerance.
func (p *Places) CheckInvariant(relTol float64) error {
	fresh := p.Recompute()
	diff := fresh - p.energy
	if diff < 0 {
		diff = -diff
	}
	scale := fresh
	if scale < 0 {
		scale = -scale
	}
	if scale < 1 {
		scale = 1
	}
	if diff/scale > relTol {
		return fmt.Errorf("%w: cached=%g fresh=%g", ErrEnergyInvariant, p.energy, fresh)
	}
	return nil
}
