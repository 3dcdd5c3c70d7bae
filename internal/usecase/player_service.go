package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// ProjectionsSource is the outbound port for the projections feed.
type ProjectionsSource interface {
	FetchPlayers(ctx context.Context) ([]player.Player, error)
}

type PlayerService struct {
	playerRepo player.Repository
	source     ProjectionsSource
	logger     *slog.Logger
}

// NewPlayerService builds a player service. source may be nil when the pool
// is loaded from a file or seed data only.
func NewPlayerService(playerRepo player.Repository, source ProjectionsSource, logger *slog.Logger) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		source:     source,
		logger:     logger,
	}
}

// LoadPlayers validates and replaces the entire player pool.
func (s *PlayerService) LoadPlayers(ctx context.Context, players []player.Player) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.LoadPlayers")
	defer span.End()

	if len(players) == 0 {
		return 0, fmt.Errorf("%w: player pool is empty", ErrInvalidInput)
	}
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := s.playerRepo.ReplaceAll(ctx, players); err != nil {
		return 0, fmt.Errorf("replace player pool: %w", err)
	}

	s.logger.InfoContext(ctx, "player pool loaded", slog.Int("players", len(players)))
	return len(players), nil
}

// RefreshFromSource pulls the latest pool from the projections feed and
// replaces the stored one.
func (s *PlayerService) RefreshFromSource(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RefreshFromSource")
	defer span.End()

	if s.source == nil {
		return 0, fmt.Errorf("%w: no projections source configured", ErrDependencyUnavailable)
	}

	players, err := s.source.FetchPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch projections: %v", ErrDependencyUnavailable, err)
	}

	return s.LoadPlayers(ctx, players)
}

// List returns the pool sorted by ADP, unranked players last.
func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ADPOrUnranked() < players[j].ADPOrUnranked()
	})
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	items, err := s.playerRepo.GetByIDs(ctx, []string{playerID})
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if len(items) == 0 {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrPlayerNotFound, playerID)
	}
	return items[0], nil
}

// Search matches a case-insensitive substring of the player name, or an
// exact position when the query parses as one.
func (s *PlayerService) Search(ctx context.Context, query string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	players, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if pos := player.Position(strings.ToUpper(query)); player.IsValidPosition(pos) {
		out := make([]player.Player, 0)
		for _, p := range players {
			if p.Position == pos {
				out = append(out, p)
			}
		}
		return out, nil
	}

	needle := strings.ToLower(query)
	out := make([]player.Player, 0)
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}
