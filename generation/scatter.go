package generation

import (
	"gridrl/grid_world"
	"gridrl/rand_source"
)

// Scatter places up to count tiles of the given type on random empty,
// non-forbidden cells and returns how many were actually placed. A result
// below count means the grid was too crowded; the caller decides whether
// under-placement matters.
func Scatter(
	g grid_world.Grid,
	tileType grid_world.TileType,
	count int,
	forbidden map[grid_world.Position]struct{},
	src rand_source.Source,
) int {
	var free []grid_world.Position
	g.Visit(func(p grid_world.Position, t *grid_world.Tile) {
		if t.Type != grid_world.Empty {
			return
		}
		if _, banned := forbidden[p]; banned {
			return
		}
		free = append(free, p)
	})

	placed := sample(free, count, src)
	for _, p := range placed {
		t := g.At(p)
		t.Type = tileType
		t.Value = grid_world.TileValue(tileType)
	}
	return len(placed)
}
