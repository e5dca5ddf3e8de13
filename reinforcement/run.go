package reinforcement

import (
	"context"

	"gridrl/grid_world"
	"gridrl/portals"
	"gridrl/rand_source"
	"gridrl/stats"
)

// Mode tags a run and its episode records.
type Mode string

const (
	ModePlayground Mode = "playground"
	ModeRandom     Mode = "random"
	ModeComparison Mode = "comparison"
	ModeDaily      Mode = "daily"
)

// RunConfig holds the per-run learning parameters.
type RunConfig struct {
	Epsilon        float64
	Alpha          float64
	Gamma          float64
	StepCap        int
	PortalCooldown int
	// Bias nudges exploration and exploitation toward one direction;
	// DirNone disables it.
	Bias grid_world.Direction
}

// Run owns one agent's live state: exactly one grid, the agent position,
// the goal set, the current episode's counters, portal cooldowns, and the
// episode history. A Run's grid and cooldown map are exclusively its own;
// independent runs may execute concurrently without locking.
type Run struct {
	Mode      Mode
	Grid      grid_world.Grid
	Agent     grid_world.Position
	Goals     []grid_world.Position
	Steps     int
	Reward    float64
	Cooldowns portals.CooldownMap
	History   []stats.EpisodeStats

	cfg     RunConfig
	src     rand_source.Source
	spawn   grid_world.Position
	episode int
}

// NewRun builds a run over the given grid. The grid becomes owned by the
// run; callers wanting an independent snapshot use Snapshot.
func NewRun(
	mode Mode,
	g grid_world.Grid,
	agent grid_world.Position,
	goals []grid_world.Position,
	cfg RunConfig,
	src rand_source.Source,
) *Run {
	if cfg.PortalCooldown <= 0 {
		cfg.PortalCooldown = portals.DefaultCooldown
	}
	return &Run{
		Mode:      mode,
		Grid:      g,
		Agent:     agent,
		Goals:     goals,
		Cooldowns: portals.CooldownMap{},
		cfg:       cfg,
		src:       src,
		spawn:     agent,
	}
}

// Tick advances one synchronous step: choose an action, move, resolve any
// portal entry, collect the destination reward, fold it into the
// destination cell's learned value (bootstrapped from the cell the agent
// came from), then check termination. Returns true when the episode ended,
// in which case its record has been appended to History.
func (r *Run) Tick() bool {
	from := r.Agent
	r.Agent = ChooseAction(r.Grid, from, r.cfg.Epsilon, r.cfg.Bias, r.src)

	if r.Grid.At(r.Agent).Type == grid_world.Portal && !r.Cooldowns.OnCooldown(r.Agent) {
		exit := portals.Teleport(r.Grid, r.Agent, r.src)
		if exit != r.Agent {
			r.Cooldowns.Set([]grid_world.Position{r.Agent, exit}, r.cfg.PortalCooldown)
			r.Agent = exit
		}
	}

	reward := TileReward(r.Grid, r.Goals, r.Agent)
	dest := r.Grid.At(r.Agent)
	dest.LearnedValue = UpdateValue(dest.LearnedValue, reward, MaxValue(r.Grid, from), r.cfg.Alpha, r.cfg.Gamma)
	dest.Visits++

	r.Steps++
	r.Reward += reward
	r.Cooldowns.DecrementAll()

	if !r.atGoal() && r.Steps < r.cfg.StepCap {
		return false
	}

	r.History = append(r.History, stats.EpisodeStats{
		Episode: r.episode,
		Steps:   r.Steps,
		Reward:  r.Reward,
		Success: r.atGoal(),
		Mode:    string(r.Mode),
	})
	r.episode++
	return true
}

func (r *Run) atGoal() bool {
	for _, goal := range r.Goals {
		if r.Agent == goal {
			return true
		}
	}
	return false
}

// ResetEpisode returns the agent to its spawn and zeroes the per-episode
// counters. Learned values and visit counts persist across episodes.
func (r *Run) ResetEpisode() {
	r.Agent = r.spawn
	r.Steps = 0
	r.Reward = 0
	r.Cooldowns = portals.CooldownMap{}
}

// RunEpisode ticks until the episode terminates or ctx is cancelled.
// Cancellation is checked between ticks only; a tick never half-applies.
// The second return is false when cancellation cut the episode short.
func (r *Run) RunEpisode(ctx context.Context) (stats.EpisodeStats, bool) {
	r.ResetEpisode()
	for {
		select {
		case <-ctx.Done():
			return stats.EpisodeStats{}, false
		default:
		}

		if r.Tick() {
			return r.History[len(r.History)-1], true
		}
	}
}

// Snapshot returns a deep copy of the run's grid, safe to hand to another
// goroutine or diff against the live grid.
func (r *Run) Snapshot() grid_world.Grid {
	return r.Grid.Clone()
}

// MoveStats reports the run's step statistics including the in-progress
// episode.
func (r *Run) MoveStats() stats.MoveStats {
	return stats.Moves(r.Steps, r.History)
}

// Summary reports the run's completed-episode aggregates.
func (r *Run) Summary() stats.Summary {
	return stats.Summarize(r.History)
}
