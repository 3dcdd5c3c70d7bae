package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roto"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/ml"
)

// Strategy selects how a simulated team drafts.
type Strategy string

const (
	StrategyADP      Strategy = "adp"
	StrategyCategory Strategy = "category"
	StrategyRandom   Strategy = "random"
)

var allStrategies = []Strategy{StrategyADP, StrategyCategory, StrategyRandom}

// categoryCandidatePool caps how deep the category strategy looks into the
// ADP-ordered pool on each pick.
const categoryCandidatePool = 50

// SimulatedPick is one pick of a simulated draft.
type SimulatedPick struct {
	PickNumber int             `json:"pick_number"`
	Round      int             `json:"round"`
	TeamName   string          `json:"team_name"`
	PlayerID   string          `json:"player_id"`
	Position   player.Position `json:"position"`
}

// SimulatedDraft is a completed simulation with final roto outcomes.
type SimulatedDraft struct {
	Strategy   Strategy                   `json:"strategy"`
	Rosters    map[string][]player.Player `json:"rosters"`
	Picks      []SimulatedPick            `json:"picks"`
	FinalRanks map[string]int             `json:"final_ranks"`
}

// SimulationParams shapes a batch of simulated drafts.
type SimulationParams struct {
	Teams      []string
	RosterSize int
	NumDrafts  int
	Seed       int64
	Workers    int
}

// SimulationService runs full-draft simulations to produce training data
// for the value model.
type SimulationService struct {
	playerRepo player.Repository
	logger     *slog.Logger
}

func NewSimulationService(playerRepo player.Repository, logger *slog.Logger) *SimulationService {
	return &SimulationService{playerRepo: playerRepo, logger: logger}
}

// GenerateTrainingData simulates drafts on a worker pool and emits one
// sample per (player, pick context), targeted on the drafting team's final
// roto rank. A fixed seed reproduces the exact sample set.
func (s *SimulationService) GenerateTrainingData(ctx context.Context, params SimulationParams) ([]ml.Sample, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.GenerateTrainingData")
	defer span.End()

	if len(params.Teams) < 2 {
		return nil, fmt.Errorf("%w: at least two teams are required", ErrInvalidInput)
	}
	if params.RosterSize <= 0 {
		return nil, fmt.Errorf("%w: roster size must be positive", ErrInvalidInput)
	}
	if params.NumDrafts <= 0 {
		params.NumDrafts = 100
	}
	if params.Workers <= 0 {
		params.Workers = 4
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if len(players) < len(params.Teams)*params.RosterSize {
		return nil, fmt.Errorf("%w: pool of %d players cannot fill %d rosters of %d",
			ErrInvalidInput, len(players), len(params.Teams), params.RosterSize)
	}

	pool, err := ants.NewPool(params.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([][]ml.Sample, params.NumDrafts)
	var workers sync.WaitGroup
	for i := 0; i < params.NumDrafts; i++ {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rng := rand.New(rand.NewSource(params.Seed + int64(i)))
			strategy := allStrategies[rng.Intn(len(allStrategies))]
			sim := s.simulate(players, params.Teams, params.RosterSize, strategy, rng)
			results[i] = samplesFromDraft(sim, players)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit simulation to worker pool: %w", err)
		}
	}
	workers.Wait()

	var samples []ml.Sample
	for _, batch := range results {
		samples = append(samples, batch...)
	}

	s.logger.InfoContext(ctx, "training data generated",
		slog.Int("drafts", params.NumDrafts),
		slog.Int("samples", len(samples)),
	)
	return samples, nil
}

// Simulate runs a single draft under one strategy.
func (s *SimulationService) Simulate(ctx context.Context, params SimulationParams, strategy Strategy) (SimulatedDraft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.Simulate")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return SimulatedDraft{}, fmt.Errorf("list players: %w", err)
	}

	rng := rand.New(rand.NewSource(params.Seed))
	return s.simulate(players, params.Teams, params.RosterSize, strategy, rng), nil
}

func (s *SimulationService) simulate(players []player.Player, teams []string, rosterSize int, strategy Strategy, rng *rand.Rand) SimulatedDraft {
	order := draft.NewOrder(teams)
	available := append([]player.Player(nil), players...)
	sortByADP(available)

	rosters := make(map[string][]player.Player, len(teams))
	for _, team := range teams {
		rosters[team] = nil
	}

	sim := SimulatedDraft{Strategy: strategy, Rosters: rosters}
	pickNumber := 1
	for round := 1; round <= rosterSize; round++ {
		for _, team := range order.RoundOrder(round) {
			if len(available) == 0 {
				break
			}

			var idx int
			switch strategy {
			case StrategyRandom:
				idx = rng.Intn(len(available))
			case StrategyCategory:
				idx = pickByCategoryNeed(available, rosters[team])
			default:
				idx = 0 // best remaining ADP
			}

			picked := available[idx]
			available = append(available[:idx], available[idx+1:]...)
			rosters[team] = append(rosters[team], picked)
			sim.Picks = append(sim.Picks, SimulatedPick{
				PickNumber: pickNumber,
				Round:      round,
				TeamName:   team,
				PlayerID:   picked.ID,
				Position:   picked.Position,
			})
			pickNumber++
		}
	}

	standings := roto.ComputeStandings(rosters)
	sim.FinalRanks = make(map[string]int, len(standings.FinalOrder))
	for i, team := range standings.FinalOrder {
		sim.FinalRanks[team] = i + 1
	}
	return sim
}

// pickByCategoryNeed scores the top of the ADP-ordered pool with the
// league's category weights and takes the best fit.
func pickByCategoryNeed(available []player.Player, roster []player.Player) int {
	limit := len(available)
	if limit > categoryCandidatePool {
		limit = categoryCandidatePool
	}

	bestIdx, bestScore := 0, 0.0
	for i := 0; i < limit; i++ {
		score := projectedValue(available[i])
		if i == 0 || score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx
}

// samplesFromDraft replays the pick log, rebuilding each pick's context to
// extract features against the drafting team's final rank.
func samplesFromDraft(sim SimulatedDraft, players []player.Player) []ml.Sample {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}

	available := append([]player.Player(nil), players...)
	sortByADP(available)
	rosters := make(map[string][]player.Player)

	samples := make([]ml.Sample, 0, len(sim.Picks))
	for _, pick := range sim.Picks {
		picked, ok := index[pick.PlayerID]
		if !ok {
			continue
		}

		features := ml.ExtractFeatures(picked, ml.PickContext{
			PickNumber: pick.PickNumber,
			Round:      pick.Round,
			TotalTeams: len(sim.Rosters),
			Roster:     rosters[pick.TeamName],
			Available:  available,
		})
		samples = append(samples, ml.Sample{
			Features: features,
			Target:   float64(sim.FinalRanks[pick.TeamName]),
		})

		rosters[pick.TeamName] = append(rosters[pick.TeamName], picked)
		for i, p := range available {
			if p.ID == pick.PlayerID {
				available = append(available[:i], available[i+1:]...)
				break
			}
		}
	}
	return samples
}
