/*
Gridrl is a discrete-grid reinforcement learning simulation: a tabular
value-learning agent on a typed tile grid, with procedural generators
(density scatter, backtracking mazes, seeded daily challenges) and episode
statistics, served over HTTP/websocket for inspection. The learner is
intentionally simple and tabular; the interest is in the grid dynamics,
the generators' determinism contract, and the bookkeeping around them.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"gridrl/atomic_float"
	"gridrl/challenge"
	"gridrl/generation"
	"gridrl/grid_world"
	"gridrl/rand_source"
	"gridrl/reinforcement"
	"gridrl/server"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

var (
	host     *string
	port     *string
	mode     *string
	gridSize *int
	addr     string
)

func init() {
	host = flag.String("host", "", "The host ip")
	port = flag.String("port", "8080", "The host port")
	mode = flag.String("mode", "", "Run mode: playground, random, comparison, or daily (overrides config)")
	gridSize = flag.Int("size", 12, "Grid side length for the interactive modes")
	flag.Parse()
	addr = *host + ":" + *port
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
	}
}

func runApp() error {
	cfg, err := reinforcement.FromYaml("./config.yaml")
	if err != nil {
		return err
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	trainingCtx, trainingCancel, err := cfg.WithTrainingDeadline(appCtx)
	if err != nil {
		return err
	}
	defer trainingCancel()

	runMode := cfg.RunMode()
	if *mode != "" {
		runMode = reinforcement.Mode(*mode)
	}

	updates := make(chan server.Snapshot)
	srv := server.NewServer(appCtx, addr, updates)

	if runMode == reinforcement.ModeComparison {
		go runComparison(trainingCtx, cfg, updates)
	} else {
		run, err := buildRun(runMode, cfg)
		if err != nil {
			return err
		}
		run.Grid.Show()
		go runEpisodes(trainingCtx, run, updates)
	}

	return srv.Serve()
}

// buildRun assembles the grid, agent, and goals for a single-agent mode.
func buildRun(mode reinforcement.Mode, cfg *reinforcement.TrainingConfig) (*reinforcement.Run, error) {
	src := rand_source.NewInteractive()
	runCfg := cfg.RunConfig()
	n := *gridSize

	switch mode {
	case reinforcement.ModeDaily:
		ch, err := challenge.Generate(time.Now().Format("2006-01-02"))
		if err != nil {
			return nil, err
		}
		goals := []grid_world.Position{ch.Goal}
		return reinforcement.NewRun(mode, ch.Grid, ch.Agent, goals, runCfg, src), nil

	case reinforcement.ModeRandom:
		g := grid_world.NewEmpty(n)
		agent := grid_world.Position{X: 0, Y: n - 1}
		forbidden := map[grid_world.Position]struct{}{agent: {}}
		generation.CarveMaze(g, forbidden, src)
		goals := generation.SelectGoalPositions(g, 1, agent, forbidden, n, src)
		if len(goals) == 0 {
			return nil, fmt.Errorf("maze generation left no goal placement")
		}
		return reinforcement.NewRun(mode, g, agent, goals, runCfg, src), nil

	case reinforcement.ModePlayground:
		g := grid_world.NewEmpty(n)
		agent := grid_world.Position{X: 0, Y: n - 1}
		forbidden := map[grid_world.Position]struct{}{agent: {}}
		placeDensity(g, n, forbidden, src)
		goals := generation.SelectGoalPositions(g, 1, agent, forbidden, n, src)
		if len(goals) == 0 {
			return nil, fmt.Errorf("playground generation left no goal placement")
		}
		return reinforcement.NewRun(mode, g, agent, goals, runCfg, src), nil
	}

	return nil, fmt.Errorf("unknown run mode %q", mode)
}

// placeDensity scatters the playground's obstacle, reward, punishment, and
// portal tiles. Short placements are logged, not fatal; a crowded grid is
// playable either way.
func placeDensity(
	g grid_world.Grid,
	n int,
	forbidden map[grid_world.Position]struct{},
	src rand_source.Source,
) {
	wanted := []struct {
		tileType grid_world.TileType
		count    int
	}{
		{grid_world.Obstacle, n * n / 6},
		{grid_world.Reward, n / 2},
		{grid_world.Punishment, n / 3},
		{grid_world.Portal, 2},
	}
	for _, w := range wanted {
		if placed := generation.Scatter(g, w.tileType, w.count, forbidden, src); placed < w.count {
			log.Printf("placed %d of %d %v tiles", placed, w.count, w.tileType)
		}
	}
}

// runEpisodes drives one run until the training context expires, publishing
// a snapshot after every completed episode.
func runEpisodes(ctx context.Context, run *reinforcement.Run, updates chan<- server.Snapshot) {
	for {
		if _, ok := run.RunEpisode(ctx); !ok {
			return
		}

		snap := server.Snapshot{
			Mode:    string(run.Mode),
			Layout:  grid_world.ToLayout(run.Snapshot(), run.Agent, run.Goals),
			Moves:   run.MoveStats(),
			Summary: run.Summary(),
		}
		select {
		case updates <- snap:
		case <-ctx.Done():
			return
		}
	}
}

// runComparison races two independently-owned agents on equivalent grids,
// one of them direction-biased, and periodically logs their combined
// progress. Only the unbiased run feeds the snapshot stream.
func runComparison(
	ctx context.Context,
	cfg *reinforcement.TrainingConfig,
	updates chan<- server.Snapshot,
) {
	plain, err := buildRun(reinforcement.ModePlayground, cfg)
	if err != nil {
		log.Println("comparison setup:", err)
		return
	}
	plain.Mode = reinforcement.ModeComparison

	// The rival learns on an independent deep copy of the same layout, so
	// the only difference between the two is the bias.
	biasedCfg := cfg.RunConfig()
	biasedCfg.Bias = grid_world.Right
	rival := reinforcement.NewRun(
		reinforcement.ModeComparison,
		plain.Snapshot(),
		plain.Agent,
		plain.Goals,
		biasedCfg,
		rand_source.NewInteractive(),
	)

	totalReward := atomic_float.NewAtomicFloat64(0)
	bestReward := atomic_float.NewAtomicFloat64(0)

	group, groupCtx := errgroup.WithContext(ctx)
	race := func(run *reinforcement.Run, publish bool) func() error {
		return func() error {
			for {
				ep, ok := run.RunEpisode(groupCtx)
				if !ok {
					return nil
				}
				totalReward.Add(ep.Reward)
				bestReward.Max(ep.Reward)
				if !publish {
					continue
				}

				snap := server.Snapshot{
					Mode:    string(run.Mode),
					Layout:  grid_world.ToLayout(run.Snapshot(), run.Agent, run.Goals),
					Moves:   run.MoveStats(),
					Summary: run.Summary(),
				}
				select {
				case updates <- snap:
				case <-groupCtx.Done():
					return nil
				}
			}
		}
	}
	group.Go(race(plain, true))
	group.Go(race(rival, false))
	group.Go(func() error {
		for range channerics.NewTicker(groupCtx.Done(), 2*time.Second) {
			log.Printf("comparison: total reward %.1f, best episode %.1f",
				totalReward.Read(), bestReward.Read())
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Println("comparison:", err)
	}
}
