package challenge

import (
	"fmt"

	"gridrl/grid_world"
	"gridrl/portals"
	"gridrl/rand_source"
)

// Replay is the submission record for a daily-challenge attempt: the
// ordered action tokens plus the seed the submitter's grid was built from.
type Replay struct {
	Actions     []string `json:"actions"`
	InitialSeed uint32   `json:"initial_seed"`
}

// ReplayResult reports the outcome of re-running a replay against the
// regenerated grid.
type ReplayResult struct {
	Valid   bool                `json:"valid"`
	Reason  string              `json:"reason,omitempty"`
	Success bool                `json:"success"`
	Steps   int                 `json:"steps"`
	Final   grid_world.Position `json:"final"`
}

// ValidateReplay regenerates the dated challenge and re-runs the recorded
// actions against it. Moves into walls or off the grid leave the agent in
// place. Portal hops are resolved from a fresh generator seeded with the
// replay's initial seed, so the verifier's hops match the submitter's.
// A malformed payload (unparseable date or action token) is an error; a
// well-formed replay that fails verification is a Valid=false result.
func ValidateReplay(date string, replay Replay) (ReplayResult, error) {
	if _, err := Generate(date); err != nil {
		return ReplayResult{}, err
	}
	if replay.InitialSeed != rand_source.DateSeed(date) {
		return ReplayResult{
			Reason: fmt.Sprintf("seed %d does not match challenge date %s", replay.InitialSeed, date),
		}, nil
	}

	ch := FromSeed(date, replay.InitialSeed)
	hopSrc := rand_source.NewMulberry32(replay.InitialSeed)
	cooldowns := portals.CooldownMap{}
	pos := ch.Agent
	result := ReplayResult{Valid: true}

	for _, token := range replay.Actions {
		dir, err := grid_world.ParseDirection(token)
		if err != nil {
			return ReplayResult{}, fmt.Errorf("replay action %d: %w", result.Steps, err)
		}

		next := pos.Add(dir)
		if ch.Grid.InBounds(next) && ch.Grid.At(next).Type != grid_world.Obstacle {
			pos = next
		}
		if ch.Grid.At(pos).Type == grid_world.Portal && !cooldowns.OnCooldown(pos) {
			exit := portals.Teleport(ch.Grid, pos, hopSrc)
			if exit != pos {
				cooldowns.Set([]grid_world.Position{pos, exit}, portals.DefaultCooldown)
				pos = exit
			}
		}
		cooldowns.DecrementAll()
		result.Steps++

		if pos == ch.Goal {
			result.Success = true
			break
		}
	}

	result.Final = pos
	return result, nil
}
