// Package resolve converts an annealed Places population into the final
// visible set: a deterministic sort followed by a greedy admit-if-clear
// sweep. Depends only on pkg/placeable.
package resolve

import (
	"log/slog"
	"sort"

	"github.com/ajturner/acetate/pkg/placeable"
)

// Skip records a placeable that was dropped during resolution because it
// overlapped an already-admitted one, for diagnostics.
type Skip struct {
	Placeable placeable.Placeable
	Overlaps  placeable.Placeable
}

// Result is the outcome of a resolve pass.
type Result struct {
	Visible []placeable.Placeable
	Skipped []Skip
}

// sortKey orders countries before cities, then by ascending rank (lower
// rank is more important), then by descending population.
func sortKey(all []placeable.Placeable) {
	sort.SliceStable(all, func(i, j int) bool {
		hi, hj := all[i].Header(), all[j].Header()
		if hi.Category != hj.Category {
			return hi.Category < hj.Category
		}
		if hi.Rank != hj.Rank {
			return hi.Rank < hj.Rank
		}
		return population(hi) > population(hj)
	})
}

func population(h *placeable.Header) int {
	if h.Population == nil {
		return 0
	}
	return *h.Population
}

// Resolve sorts all placeables by (category, rank, -population) and walks
// them in that order, admitting each one unless it overlaps a
// already-admitted placeable. The input slice is sorted in place.
func Resolve(all []placeable.Placeable) Result {
	sortKey(all)

	var res Result
	res.Visible = make([]placeable.Placeable, 0, len(all))

	for _, pl := range all {
		blocker := firstOverlap(pl, res.Visible)
		if blocker != nil {
			slog.Debug("resolve: dropping overlapping placeable",
				"id", pl.Header().ID, "blocked_by", blocker.Header().ID)
			res.Skipped = append(res.Skipped, Skip{Placeable: pl, Overlaps: blocker})
			continue
		}
		res.Visible = append(res.Visible, pl)
	}

	return res
}

func firstOverlap(pl placeable.Placeable, visible []placeable.Placeable) placeable.Placeable {
	for _, v := range visible {
		if placeable.Overlaps(pl, v) {
			return v
		}
	}
	return nil
}
