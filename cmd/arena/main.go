package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/freeeve/tergiversators/internal/arena"
	"github.com/freeeve/tergiversators/internal/logger"
	"github.com/freeeve/tergiversators/pkg/tergiversators"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		players  int
		numGames int
		workers  int
		maxTurns int
		seed     int64
		jsonOut  bool
		level    string
	)

	flag.IntVar(&players, "players", 3, "Number of seats (2-5)")
	flag.IntVar(&numGames, "n", 100, "Number of games to run")
	flag.IntVar(&workers, "workers", 4, "Concurrency (parallel games)")
	flag.IntVar(&maxTurns, "max-turns", arena.DefaultMaxTurns, "Turns before a game is scored as it stands")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.StringVar(&level, "log-level", "info", "Log level")
	flag.Parse()

	zerolog.SetGlobalLevel(logger.ParseLevel(level))

	if players < tergiversators.MinPlayers || players > tergiversators.MaxPlayers {
		log.Fatal().Int("players", players).Msg("Player count must be between 2 and 5")
	}
	if workers < 1 {
		workers = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := make([]*arena.Result, numGames)
	var errCount atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < numGames; i++ {
		g.Go(func() error {
			gameSeed := seed
			if seed != 0 {
				gameSeed = seed + int64(i)
			}
			res, err := arena.RunGame(gctx, arena.Config{Players: players, Seed: gameSeed, MaxTurns: maxTurns})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Error().Err(err).Int("game", i+1).Msg("Game failed")
				errCount.Add(1)
				return nil
			}
			results[i] = res
			log.Info().Int("game", i+1).Int64("seed", res.Seed).Str("winner", res.Winner.String()).Int("turns", res.Turns).Msg("Game completed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("Arena interrupted")
	}

	summary := arena.Summarize(results)
	if jsonOut {
		printJSON(summary, results, int(errCount.Load()))
	} else {
		printSummary(summary, players, maxTurns, int(errCount.Load()))
	}
}

func printSummary(s arena.Summary, players, maxTurns, errCount int) {
	fmt.Printf("\nResults (%d games, %d players, max %d turns):\n", s.Games, players, maxTurns)
	if errCount > 0 {
		fmt.Printf("  (%d games failed)\n", errCount)
	}
	for _, st := range s.Seats {
		rate := 0.0
		if st.Games > 0 {
			rate = 100 * float64(st.Wins) / float64(st.Games)
		}
		fmt.Printf("  %-14s %4d wins  (%.1f%%)\n", st.Player.Ordinal(), st.Wins, rate)
	}
	fmt.Printf("  %-14s %4d\n", "Draws", s.Draws)
	fmt.Printf("\n  Avg turns: %.1f   unfinished: %d   stalled: %d\n", s.AvgTurns, s.Unfinished, s.Stalled)
	fmt.Printf("  Zones held at end: rogues %d, bullies %d, goons %d\n", s.Zones.Rogues, s.Zones.Bullies, s.Zones.Goons)
}

func printJSON(s arena.Summary, results []*arena.Result, errCount int) {
	out := struct {
		Summary arena.Summary   `json:"summary"`
		Errors  int             `json:"errors"`
		Results []*arena.Result `json:"results"`
	}{
		Summary: s,
		Errors:  errCount,
		Results: results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
