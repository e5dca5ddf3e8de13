package grid_world

import "fmt"

// TileType enumerates the closed set of tile kinds a cell may hold.
type TileType int

const (
	Empty TileType = iota
	Obstacle
	Reward
	Punishment
	Goal
	Portal
)

var tileNames = map[TileType]string{
	Empty:      "empty",
	Obstacle:   "obstacle",
	Reward:     "reward",
	Punishment: "punishment",
	Goal:       "goal",
	Portal:     "portal",
}

func (t TileType) String() string {
	if name, ok := tileNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tile(%d)", int(t))
}

// ParseTileType maps a serialized tile name back to its TileType.
func ParseTileType(name string) (TileType, error) {
	for t, n := range tileNames {
		if n == name {
			return t, nil
		}
	}
	return Empty, fmt.Errorf("unknown tile type %q", name)
}

// Reward magnitudes. The goal payout is fixed at twice the reward unit.
const (
	RewardUnit        = 10.0
	PunishmentPenalty = 10.0
	ObstaclePenalty   = 5.0
	StepPenalty       = 1.0
)

// TileValue returns the static reward magnitude assigned to a tile of the
// given type at placement time. Portals and empty cells carry no static value.
func TileValue(t TileType) float64 {
	switch t {
	case Reward:
		return RewardUnit
	case Punishment:
		return -PunishmentPenalty
	case Goal:
		return 2 * RewardUnit
	case Obstacle:
		return -ObstaclePenalty
	default:
		return 0
	}
}

// Position is a grid-relative 0-indexed coordinate pair.
type Position struct {
	X, Y int
}

// Manhattan returns the L1 distance between two positions.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Direction is one of the four cardinal moves. Y grows downward, so Up
// decreases Y; this matches the row-major layout records consumed upstream.
type Direction int

const (
	DirNone Direction = iota - 1
	Up
	Down
	Left
	Right
)

// Directions lists the cardinal moves in their canonical enumeration order.
// Action enumeration, tie-breaking, and serialization all rely on this order.
var Directions = [4]Direction{Up, Down, Left, Right}

var directionNames = [4]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < Up || d > Right {
		return "none"
	}
	return directionNames[d]
}

// ParseDirection maps a replay action token to its Direction.
func ParseDirection(token string) (Direction, error) {
	for i, name := range directionNames {
		if name == token {
			return Direction(i), nil
		}
	}
	return DirNone, fmt.Errorf("unknown direction token %q", token)
}

// Delta returns the unit coordinate offset of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Add returns the position one step away in the given direction.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Tile is the full per-cell state. LearnedValue is the single learned scalar
// for the cell: the estimated value of moving into it, shared across every
// direction of entry. There is deliberately no per-action table.
type Tile struct {
	Type         TileType
	Value        float64
	LearnedValue float64
	Visits       int
}

// Grid is a square matrix of tiles, indexed [y][x]. Out-of-range coordinates
// are a caller contract violation, not a reported failure.
type Grid [][]Tile

// NewEmpty returns an n x n grid of zeroed empty tiles.
func NewEmpty(n int) Grid {
	g := make(Grid, n)
	for y := range g {
		g[y] = make([]Tile, n)
	}
	return g
}

// Size returns the side length of the grid.
func (g Grid) Size() int {
	return len(g)
}

// InBounds reports whether the position lies within the grid.
func (g Grid) InBounds(p Position) bool {
	n := len(g)
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

// At returns the addressable tile at the given position.
func (g Grid) At(p Position) *Tile {
	return &g[p.Y][p.X]
}

// Clone returns a structurally independent deep copy: mutating the clone's
// tiles never changes the original's.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for y := range g {
		c[y] = make([]Tile, len(g[y]))
		copy(c[y], g[y])
	}
	return c
}

// Visit applies fn to every tile in row-major order.
func (g Grid) Visit(fn func(p Position, t *Tile)) {
	for y := range g {
		for x := range g[y] {
			fn(Position{X: x, Y: y}, &g[y][x])
		}
	}
}

// Show prints the grid to the console, one rune per tile, for debugging.
func (g Grid) Show() {
	runes := map[TileType]rune{
		Empty:      '.',
		Obstacle:   '#',
		Reward:     '$',
		Punishment: '!',
		Goal:       '+',
		Portal:     'O',
	}
	for y := range g {
		for x := range g[y] {
			fmt.Printf("%c ", runes[g[y][x].Type])
		}
		fmt.Println()
	}
}
