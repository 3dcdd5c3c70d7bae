package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sourcegraph/conc/pool"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roto"
)

const (
	standingsCacheTTL     = 5 * time.Minute
	standingsCacheSweep   = 10 * time.Minute
	standingsMaxComputers = 8
)

// StandingsService projects rotisserie standings from the current rosters.
// Results are memoized per roster signature, so repeated reads between picks
// hit the cache and any pick or revert naturally invalidates it.
type StandingsService struct {
	draftRepo  draft.Repository
	playerRepo player.Repository
	cache      *gocache.Cache
	logger     *slog.Logger
}

func NewStandingsService(draftRepo draft.Repository, playerRepo player.Repository, logger *slog.Logger) *StandingsService {
	return &StandingsService{
		draftRepo:  draftRepo,
		playerRepo: playerRepo,
		cache:      gocache.New(standingsCacheTTL, standingsCacheSweep),
		logger:     logger,
	}
}

// Standings computes the projected roto standings for a draft.
func (s *StandingsService) Standings(ctx context.Context, draftID string) (roto.Standings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	state, ok, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return roto.Standings{}, fmt.Errorf("get draft: %w", err)
	}
	if !ok {
		return roto.Standings{}, fmt.Errorf("%w: draft=%s", ErrDraftNotFound, draftID)
	}

	rosters, err := s.resolveRosters(ctx, state)
	if err != nil {
		return roto.Standings{}, err
	}

	key := rosterSignature(draftID, rosters)
	if cached, found := s.cache.Get(key); found {
		return cached.(roto.Standings), nil
	}

	standings := s.compute(rosters)
	s.cache.Set(key, standings, gocache.DefaultExpiration)

	s.logger.DebugContext(ctx, "standings computed",
		slog.String("draft_id", draftID),
		slog.Int("teams", len(rosters)),
	)
	return standings, nil
}

// Preview computes standings as if the given team also drafted one more
// player. Used by the recommendation engine's category-gap analysis.
func (s *StandingsService) Preview(ctx context.Context, draftID, teamName string, extra player.Player) (roto.Standings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Preview")
	defer span.End()

	state, ok, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return roto.Standings{}, fmt.Errorf("get draft: %w", err)
	}
	if !ok {
		return roto.Standings{}, fmt.Errorf("%w: draft=%s", ErrDraftNotFound, draftID)
	}

	rosters, err := s.resolveRosters(ctx, state)
	if err != nil {
		return roto.Standings{}, err
	}
	rosters[teamName] = append(rosters[teamName], extra)

	return s.compute(rosters), nil
}

// compute runs per-team totals on a bounded worker pool; scoring itself is
// cheap and stays single-threaded.
func (s *StandingsService) compute(rosters map[string][]player.Player) roto.Standings {
	totals := make(map[string]roto.TeamTotals, len(rosters))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(standingsMaxComputers)
	for team, roster := range rosters {
		team, roster := team, roster
		p.Go(func() {
			t := roto.ComputeTeamTotals(roster)
			mu.Lock()
			totals[team] = t
			mu.Unlock()
		})
	}
	p.Wait()

	return roto.ComputeStandingsFromTotals(totals)
}

func (s *StandingsService) resolveRosters(ctx context.Context, state *draft.State) (map[string][]player.Player, error) {
	rosters := make(map[string][]player.Player, len(state.Teams))
	for _, team := range state.Teams {
		players, err := s.playerRepo.GetByIDs(ctx, state.TeamRosters[team])
		if err != nil {
			return nil, fmt.Errorf("resolve roster for %s: %w", team, err)
		}
		rosters[team] = players
	}
	return rosters, nil
}

// rosterSignature hashes the sorted per-team player-id sets. Any change to
// any roster's player set produces a new key.
func rosterSignature(draftID string, rosters map[string][]player.Player) string {
	teams := make([]string, 0, len(rosters))
	for team := range rosters {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	h := fnv.New64a()
	h.Write([]byte(draftID))
	for _, team := range teams {
		ids := make([]string, 0, len(rosters[team]))
		for _, p := range rosters[team] {
			ids = append(ids, p.ID)
		}
		sort.Strings(ids)

		h.Write([]byte{0})
		h.Write([]byte(team))
		for _, id := range ids {
			h.Write([]byte{1})
			h.Write([]byte(id))
		}
	}
	return "standings:" + strconv.FormatUint(h.Sum64(), 16)
}
