// Package generation produces grid layouts for the interactive modes:
// goal placement, maze carving, and random density scatter. All randomness
// comes from an injected source so the daily-challenge generator's seeded
// stream is never touched.
package generation

import (
	"sort"

	"gridrl/grid_world"
	"gridrl/rand_source"
)

// SelectGoalPositions chooses up to count goal cells among the grid's empty,
// non-forbidden cells, preferring cells at least minDistance (Manhattan)
// from start. When too few cells qualify, the pool is relaxed to the
// farthest candidates regardless of distance. An empty result means
// placement was fully blocked; that is a reportable outcome, not an error.
func SelectGoalPositions(
	g grid_world.Grid,
	count int,
	start grid_world.Position,
	forbidden map[grid_world.Position]struct{},
	minDistance int,
	src rand_source.Source,
) []grid_world.Position {
	var qualifying, candidates []grid_world.Position
	g.Visit(func(p grid_world.Position, t *grid_world.Tile) {
		if t.Type != grid_world.Empty {
			return
		}
		if _, banned := forbidden[p]; banned {
			return
		}
		candidates = append(candidates, p)
		if grid_world.Manhattan(p, start) >= minDistance {
			qualifying = append(qualifying, p)
		}
	})

	if len(qualifying) >= count {
		return sample(qualifying, count, src)
	}

	// Relax: take the farthest candidates, at least 3x the requested count
	// deep, and sample goals from that pool.
	sort.SliceStable(candidates, func(i, j int) bool {
		return grid_world.Manhattan(candidates[i], start) > grid_world.Manhattan(candidates[j], start)
	})
	poolSize := count
	if 3*count > poolSize {
		poolSize = 3 * count
	}
	if poolSize > len(candidates) {
		poolSize = len(candidates)
	}
	pool := candidates[:poolSize]
	if count > len(pool) {
		count = len(pool)
	}
	return sample(pool, count, src)
}

// sample draws count elements uniformly without replacement via a
// Fisher-Yates shuffle of a copy.
func sample(positions []grid_world.Position, count int, src rand_source.Source) []grid_world.Position {
	shuffled := make([]grid_world.Position, len(positions))
	copy(shuffled, positions)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
