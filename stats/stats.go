// Package stats aggregates completed-episode records into the rolling
// figures shown for a run. Aggregation is pure: inputs are never mutated,
// and empty-history aggregates are nil rather than zero.
package stats

// EpisodeStats records one completed episode. Immutable once created.
type EpisodeStats struct {
	Episode int     `json:"episode"`
	Steps   int     `json:"steps"`
	Reward  float64 `json:"reward"`
	Success bool    `json:"success"`
	Mode    string  `json:"mode"`
}

// MoveStats describes the current episode's progress against history.
type MoveStats struct {
	CurrentSteps int      `json:"currentSteps"`
	Episodes     int      `json:"episodes"`
	TotalSteps   int      `json:"totalSteps"`
	AvgSteps     *float64 `json:"avgSteps"`
	BestSteps    *int     `json:"bestSteps"`
}

// Summary aggregates a run's completed episodes.
type Summary struct {
	Episodes   int      `json:"episodes"`
	AvgSteps   *float64 `json:"avgSteps"`
	AvgReward  *float64 `json:"avgReward"`
	BestReward *float64 `json:"bestReward"`
	BestSteps  *int     `json:"bestSteps"`
}

// Moves returns step statistics over the history plus the in-progress count.
func Moves(currentSteps int, history []EpisodeStats) MoveStats {
	ms := MoveStats{
		CurrentSteps: currentSteps,
		Episodes:     len(history),
	}
	if len(history) == 0 {
		return ms
	}

	best := history[0].Steps
	for _, ep := range history {
		ms.TotalSteps += ep.Steps
		if ep.Steps < best {
			best = ep.Steps
		}
	}
	avg := float64(ms.TotalSteps) / float64(len(history))
	ms.AvgSteps = &avg
	ms.BestSteps = &best
	return ms
}

// Summarize returns the completed-episode aggregates for a run.
func Summarize(history []EpisodeStats) Summary {
	s := Summary{Episodes: len(history)}
	if len(history) == 0 {
		return s
	}

	totalSteps := 0
	totalReward := 0.0
	bestReward := history[0].Reward
	bestSteps := history[0].Steps
	for _, ep := range history {
		totalSteps += ep.Steps
		totalReward += ep.Reward
		if ep.Reward > bestReward {
			bestReward = ep.Reward
		}
		if ep.Steps < bestSteps {
			bestSteps = ep.Steps
		}
	}

	avgSteps := float64(totalSteps) / float64(len(history))
	avgReward := totalReward / float64(len(history))
	s.AvgSteps = &avgSteps
	s.AvgReward = &avgReward
	s.BestReward = &bestReward
	s.BestSteps = &bestSteps
	return s
}
