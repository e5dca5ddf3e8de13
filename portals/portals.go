// Package portals handles portal discovery, teleport target selection, and
// the per-position reuse cooldowns.
package portals

import (
	"gridrl/grid_world"
	"gridrl/rand_source"
)

// DefaultCooldown is the number of steps a portal endpoint stays unusable
// after a teleport.
const DefaultCooldown = 5

// Key packs a position into a compact integer map key.
func Key(p grid_world.Position) int {
	return p.X<<16 | p.Y
}

// Find returns all portal positions in row-major order.
func Find(g grid_world.Grid) []grid_world.Position {
	var found []grid_world.Position
	g.Visit(func(p grid_world.Position, t *grid_world.Tile) {
		if t.Type == grid_world.Portal {
			found = append(found, p)
		}
	})
	return found
}

// Teleport selects a destination uniformly among the portals other than the
// one at cur. With fewer than two portals, or none besides cur, the input
// position is returned unchanged; a no-op, not an error.
func Teleport(g grid_world.Grid, cur grid_world.Position, src rand_source.Source) grid_world.Position {
	all := Find(g)
	if len(all) < 2 {
		return cur
	}

	others := make([]grid_world.Position, 0, len(all))
	for _, p := range all {
		if p != cur {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return cur
	}
	return others[src.Intn(len(others))]
}

// CooldownMap tracks remaining cooldown steps per position key. Absence
// means not on cooldown; stored values are always > 0.
type CooldownMap map[int]int

// DecrementAll counts every entry down one step, dropping entries that
// would reach zero. Non-positive values are never kept.
func (m CooldownMap) DecrementAll() {
	for key, remaining := range m {
		if remaining > 1 {
			m[key] = remaining - 1
		} else {
			delete(m, key)
		}
	}
}

// Set puts the given positions on cooldown for duration steps, overwriting
// any existing entries. Other entries are left untouched.
func (m CooldownMap) Set(positions []grid_world.Position, duration int) {
	for _, p := range positions {
		m[Key(p)] = duration
	}
}

// OnCooldown reports whether the position has a strictly positive cooldown.
func (m CooldownMap) OnCooldown(p grid_world.Position) bool {
	return m[Key(p)] > 0
}
