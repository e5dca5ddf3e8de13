// Package reinforcement implements the tabular learner: epsilon-greedy
// action selection over the four cardinal moves, the per-cell value update
// rule, and the per-tick episode state machine.
//
// The learned value lives on the destination cell itself, not on a
// (state, action) pair: "the value of moving into this cell" is one scalar
// per position, shared across every direction of entry. Keep it that way;
// widening it to a per-action table changes observable learning behavior.
package reinforcement

import (
	"gridrl/grid_world"
	"gridrl/rand_source"
)

const (
	// Chance that an exploration step takes the caller-supplied bias
	// direction instead of a uniform random action.
	biasChance = 0.35
	// Transient bonus added to the bias candidate during exploitation
	// comparison. Never written back to the tile.
	biasBonus = 0.05
)

// neighbors returns the in-bounds, non-obstacle cardinal neighbors of pos
// in up, down, left, right order. May be empty.
func neighbors(g grid_world.Grid, pos grid_world.Position) []grid_world.Position {
	var moves []grid_world.Position
	for _, d := range grid_world.Directions {
		next := pos.Add(d)
		if !g.InBounds(next) {
			continue
		}
		if g.At(next).Type == grid_world.Obstacle {
			continue
		}
		moves = append(moves, next)
	}
	return moves
}

// PossibleActions returns the legal moves from pos. A fully boxed-in agent
// gets the singleton {pos}: staying in place is always available, so there
// is never an empty action set and never an error.
func PossibleActions(g grid_world.Grid, pos grid_world.Position) []grid_world.Position {
	moves := neighbors(g, pos)
	if len(moves) == 0 {
		return []grid_world.Position{pos}
	}
	return moves
}

// ChooseAction picks the next position by an epsilon-greedy policy. With
// probability explorationRate the choice is random, except a supplied bias
// direction matching a legal move is taken with a fixed 35% preference.
// Otherwise the highest-learned-value action wins, ties broken by
// first-encountered enumeration order (up, down, left, right); the bias
// candidate competes with a small transient bonus.
func ChooseAction(
	g grid_world.Grid,
	pos grid_world.Position,
	explorationRate float64,
	bias grid_world.Direction,
	src rand_source.Source,
) grid_world.Position {
	actions := PossibleActions(g, pos)

	biased := grid_world.Position{X: -1, Y: -1}
	if bias != grid_world.DirNone {
		candidate := pos.Add(bias)
		for _, a := range actions {
			if a == candidate {
				biased = candidate
				break
			}
		}
	}

	if src.Float64() < explorationRate {
		if biased.X >= 0 && src.Float64() < biasChance {
			return biased
		}
		return actions[src.Intn(len(actions))]
	}

	best := actions[0]
	bestVal := compareValue(g, actions[0], biased)
	for _, a := range actions[1:] {
		if v := compareValue(g, a, biased); v > bestVal {
			best = a
			bestVal = v
		}
	}
	return best
}

func compareValue(g grid_world.Grid, p, biased grid_world.Position) float64 {
	v := g.At(p).LearnedValue
	if p == biased {
		v += biasBonus
	}
	return v
}

// TileReward returns the reward for occupying pos. A configured goal
// position pays the goal reward regardless of the tile's static type.
// Portals pay nothing here; any teleport reward is the caller's concern.
// Empty cells cost the fixed per-step penalty.
func TileReward(g grid_world.Grid, goals []grid_world.Position, pos grid_world.Position) float64 {
	for _, goal := range goals {
		if goal == pos {
			return grid_world.TileValue(grid_world.Goal)
		}
	}

	t := g.At(pos)
	switch t.Type {
	case grid_world.Empty:
		return -grid_world.StepPenalty
	case grid_world.Portal:
		return 0
	default:
		return t.Value
	}
}

// UpdateValue is the tabular update rule:
//
//	q' = q + alpha * (reward + gamma*maxNext - q)
//
// Pure; the caller writes the result into the destination tile.
func UpdateValue(current, reward, maxNextValue, alpha, gamma float64) float64 {
	return current + alpha*(reward+gamma*maxNextValue-current)
}

// MaxValue returns the maximum learned value among the legal moves from
// pos, or 0 when no move exists. Zero rather than negative infinity keeps
// boxed-in cells from poisoning bootstrapped comparisons.
func MaxValue(g grid_world.Grid, pos grid_world.Position) float64 {
	moves := neighbors(g, pos)
	if len(moves) == 0 {
		return 0
	}

	max := g.At(moves[0]).LearnedValue
	for _, m := range moves[1:] {
		if v := g.At(m).LearnedValue; v > max {
			max = v
		}
	}
	return max
}
