package grid_world

import "fmt"

// The layout record is the grid's external serialization shape, shared with
// persistence and replay verification. Only non-empty tiles are listed; a
// single goal is written to "goal", multiple goals to "goals".

type LayoutTile struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

type LayoutPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Layout struct {
	Size  int              `json:"size"`
	Tiles []LayoutTile     `json:"tiles"`
	Agent LayoutPosition   `json:"agent"`
	Goal  *LayoutPosition  `json:"goal,omitempty"`
	Goals []LayoutPosition `json:"goals,omitempty"`
}

// ToLayout flattens a grid plus agent and goal positions into the layout
// record. Tiles are emitted in row-major order.
func ToLayout(g Grid, agent Position, goals []Position) Layout {
	layout := Layout{
		Size:  g.Size(),
		Tiles: []LayoutTile{},
		Agent: LayoutPosition{X: agent.X, Y: agent.Y},
	}
	g.Visit(func(p Position, t *Tile) {
		if t.Type == Empty {
			return
		}
		layout.Tiles = append(layout.Tiles, LayoutTile{X: p.X, Y: p.Y, Type: t.Type.String()})
	})

	if len(goals) == 1 {
		layout.Goal = &LayoutPosition{X: goals[0].X, Y: goals[0].Y}
	} else {
		for _, gl := range goals {
			layout.Goals = append(layout.Goals, LayoutPosition{X: gl.X, Y: gl.Y})
		}
	}
	return layout
}

// FromLayout rebuilds a grid, agent position, and goal list from a layout
// record. Tile values are reassigned from the tile type, since the record
// does not carry magnitudes.
func FromLayout(layout Layout) (Grid, Position, []Position, error) {
	if layout.Size < 1 {
		return nil, Position{}, nil, fmt.Errorf("invalid layout size %d", layout.Size)
	}

	g := NewEmpty(layout.Size)
	for _, lt := range layout.Tiles {
		t, err := ParseTileType(lt.Type)
		if err != nil {
			return nil, Position{}, nil, fmt.Errorf("layout tile (%d,%d): %w", lt.X, lt.Y, err)
		}
		p := Position{X: lt.X, Y: lt.Y}
		if !g.InBounds(p) {
			return nil, Position{}, nil, fmt.Errorf("layout tile (%d,%d) out of bounds for size %d", lt.X, lt.Y, layout.Size)
		}
		tile := g.At(p)
		tile.Type = t
		tile.Value = TileValue(t)
	}

	agent := Position{X: layout.Agent.X, Y: layout.Agent.Y}
	var goals []Position
	if layout.Goal != nil {
		goals = append(goals, Position{X: layout.Goal.X, Y: layout.Goal.Y})
	}
	for _, gl := range layout.Goals {
		goals = append(goals, Position{X: gl.X, Y: gl.Y})
	}
	return g, agent, goals, nil
}
