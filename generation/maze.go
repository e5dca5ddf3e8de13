package generation

import (
	"gridrl/grid_world"
	"gridrl/rand_source"
)

// Share of cells opened at random after the carve, for variety. These extra
// openings are not connectivity-checked, so isolated pockets can occur; the
// goal selector's relaxed pool and the boxed-in stay-in-place action keep
// that survivable.
const extraOpeningShare = 0.03

// CarveMaze turns the grid into a maze: every non-forbidden cell is first
// marked obstacle, then corridors are carved by an iterative
// recursive-backtracking walk over two-step jumps, opening the wall cell
// between each pair. Forbidden cells are never overwritten. The walk uses an
// explicit stack rather than recursion so large grids cannot exhaust the
// call stack.
func CarveMaze(
	g grid_world.Grid,
	forbidden map[grid_world.Position]struct{},
	src rand_source.Source,
) {
	n := g.Size()

	open := func(p grid_world.Position) {
		if _, banned := forbidden[p]; banned {
			return
		}
		t := g.At(p)
		t.Type = grid_world.Empty
		t.Value = 0
	}

	g.Visit(func(p grid_world.Position, t *grid_world.Tile) {
		if _, banned := forbidden[p]; banned {
			return
		}
		t.Type = grid_world.Obstacle
		t.Value = grid_world.TileValue(grid_world.Obstacle)
	})

	if n < 4 {
		return
	}

	// Fixed interior start in the bottom-left quadrant, one cell off the
	// border.
	start := grid_world.Position{X: 1, Y: n - 2}
	visited := make([]bool, n*n)
	idx := func(p grid_world.Position) int { return p.Y*n + p.X }

	visited[idx(start)] = true
	open(start)
	stack := []grid_world.Position{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		advanced := false
		for _, d := range shuffledDirections(src) {
			dx, dy := d.Delta()
			next := grid_world.Position{X: cur.X + 2*dx, Y: cur.Y + 2*dy}
			if !g.InBounds(next) || visited[idx(next)] {
				continue
			}

			visited[idx(next)] = true
			open(grid_world.Position{X: cur.X + dx, Y: cur.Y + dy})
			open(next)
			stack = append(stack, next)
			advanced = true
			break
		}
		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}

	carveExtraOpenings(g, forbidden, src)
}

func carveExtraOpenings(
	g grid_world.Grid,
	forbidden map[grid_world.Position]struct{},
	src rand_source.Source,
) {
	n := g.Size()
	var walls []grid_world.Position
	g.Visit(func(p grid_world.Position, t *grid_world.Tile) {
		if t.Type != grid_world.Obstacle {
			return
		}
		if _, banned := forbidden[p]; banned {
			return
		}
		walls = append(walls, p)
	})

	extra := int(float64(n*n) * extraOpeningShare)
	for _, p := range sample(walls, extra, src) {
		t := g.At(p)
		t.Type = grid_world.Empty
		t.Value = 0
	}
}

func shuffledDirections(src rand_source.Source) [4]grid_world.Direction {
	dirs := grid_world.Directions
	for i := len(dirs) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
