package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/memory"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/ml"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	var (
		poolPath   = flag.String("players", "", "JSON file with the player pool (empty = seed pool)")
		teams      = flag.Int("teams", 4, "number of teams per simulated draft")
		rosterSize = flag.Int("roster", 5, "roster slots per team")
		numDrafts  = flag.Int("drafts", 200, "number of drafts to simulate")
		workers    = flag.Int("workers", 0, "simulation workers (0 = GOMAXPROCS)")
		seed       = flag.Int64("seed", 42, "rng seed for reproducible runs")
		numTrees   = flag.Int("trees", 50, "trees in the forest")
		maxDepth   = flag.Int("depth", 6, "maximum tree depth")
		modelPath  = flag.String("out", "model.json", "output path for the trained model")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(context.Background(), logger, runParams{
		poolPath:   *poolPath,
		teams:      *teams,
		rosterSize: *rosterSize,
		numDrafts:  *numDrafts,
		workers:    *workers,
		seed:       *seed,
		numTrees:   *numTrees,
		maxDepth:   *maxDepth,
		modelPath:  *modelPath,
	}); err != nil {
		logger.Error("training run failed", "error", err)
		os.Exit(1)
	}
}

type runParams struct {
	poolPath   string
	teams      int
	rosterSize int
	numDrafts  int
	workers    int
	seed       int64
	numTrees   int
	maxDepth   int
	modelPath  string
}

func run(ctx context.Context, logger *slog.Logger, p runParams) error {
	teamNames := make([]string, 0, p.teams)
	for i := 0; i < p.teams; i++ {
		teamNames = append(teamNames, fmt.Sprintf("Sim Team %d", i+1))
	}

	pool, err := loadPool(p.poolPath)
	if err != nil {
		return err
	}
	svc := usecase.NewSimulationService(memory.NewPlayerRepository(pool), logger)

	logger.Info("generating training data",
		"teams", p.teams,
		"roster_size", p.rosterSize,
		"drafts", p.numDrafts,
		"seed", p.seed,
	)
	samples, err := svc.GenerateTrainingData(ctx, usecase.SimulationParams{
		Teams:      teamNames,
		RosterSize: p.rosterSize,
		NumDrafts:  p.numDrafts,
		Seed:       p.seed,
		Workers:    p.workers,
	})
	if err != nil {
		return fmt.Errorf("generate training data: %w", err)
	}
	logger.Info("training data ready", "samples", len(samples))

	model, err := ml.Train(samples, ml.TrainConfig{
		Seed: p.seed,
		Forest: ml.ForestConfig{
			NumTrees: p.numTrees,
			MaxDepth: p.maxDepth,
		},
	})
	if err != nil {
		return fmt.Errorf("train model: %w", err)
	}

	logger.Info("model trained",
		"train_samples", model.Metrics.TrainSamples,
		"test_samples", model.Metrics.TestSamples,
		"mae", model.Metrics.MAE,
		"r2", model.Metrics.R2,
	)

	if err := model.Save(p.modelPath); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	logger.Info("model saved", "path", p.modelPath)

	return nil
}

func loadPool(path string) ([]player.Player, error) {
	if path == "" {
		return memory.SeedPlayers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read player pool: %w", err)
	}
	var pool []player.Player
	if err := sonic.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("decode player pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("player pool %s is empty", path)
	}

	return pool, nil
}
