package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roster"
	idgen "github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/id"
)

// CreateDraftParams describes a new draft. Teams is the pick order for the
// fixed rounds; MyTeamName must be one of them. DraftID is optional and
// generated when blank.
type CreateDraftParams struct {
	DraftID    string   `json:"draft_id"`
	LeagueName string   `json:"league_name" validate:"required"`
	Teams      []string `json:"teams" validate:"required,min=2"`
	RosterSize int      `json:"roster_size" validate:"required,min=1"`
	MyTeamName string   `json:"my_team_name" validate:"required"`
}

// PickResult reports the outcome of a confirmed pick.
type PickResult struct {
	Pick       draft.Pick    `json:"pick"`
	Slot       roster.Slot   `json:"slot"`
	Player     player.Player `json:"player"`
	NextTeam   string        `json:"next_team"`
	NextPick   int           `json:"next_pick_number"`
	NextRound  int           `json:"next_round"`
	IsComplete bool          `json:"draft_complete"`
}

type DraftService struct {
	draftRepo  draft.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	ids        idgen.Generator
	logger     *slog.Logger
	now        func() time.Time

	mu        sync.Mutex
	currentID string
}

func NewDraftService(
	draftRepo draft.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	logger *slog.Logger,
) *DraftService {
	return &DraftService{
		draftRepo:  draftRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		ids:        idgen.NewRandomGenerator(),
		logger:     logger,
		now:        time.Now,
	}
}

// Create initializes a draft with empty rosters for every team and makes it
// the active draft.
func (s *DraftService) Create(ctx context.Context, params CreateDraftParams) (*draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Create")
	defer span.End()

	params.DraftID = strings.TrimSpace(params.DraftID)
	params.MyTeamName = strings.TrimSpace(params.MyTeamName)
	if params.DraftID == "" {
		generated, err := s.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate draft id: %w", err)
		}
		params.DraftID = generated
	}
	if len(params.Teams) < 2 {
		return nil, fmt.Errorf("%w: at least two teams are required", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(params.Teams))
	myTeamListed := false
	for _, team := range params.Teams {
		if strings.TrimSpace(team) == "" {
			return nil, fmt.Errorf("%w: blank team name", ErrInvalidInput)
		}
		if seen[team] {
			return nil, fmt.Errorf("%w: duplicate team name %q", ErrInvalidInput, team)
		}
		seen[team] = true
		if team == params.MyTeamName {
			myTeamListed = true
		}
	}
	if !myTeamListed {
		return nil, fmt.Errorf("%w: my team %q is not in the team list", ErrInvalidInput, params.MyTeamName)
	}

	state := draft.NewState(params.DraftID, params.LeagueName, params.Teams, params.RosterSize, params.MyTeamName)
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, team := range params.Teams {
		state.TeamRosters[team] = []string{}
		if err := s.rosterRepo.Save(ctx, state.DraftID, roster.NewGrid(team)); err != nil {
			return nil, fmt.Errorf("initialize roster for %s: %w", team, err)
		}
	}

	if err := s.draftRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.setCurrent(state.DraftID)
	s.logger.InfoContext(ctx, "draft created",
		slog.String("draft_id", state.DraftID),
		slog.Int("teams", state.TotalTeams),
		slog.Int("roster_size", state.RosterSize),
	)
	return state, nil
}

// Load fetches a persisted draft and makes it the active one.
func (s *DraftService) Load(ctx context.Context, draftID string) (*draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Load")
	defer span.End()

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}
	s.setCurrent(state.DraftID)
	return state, nil
}

// Current returns the active draft.
func (s *DraftService) Current(ctx context.Context) (*draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Current")
	defer span.End()

	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	if id == "" {
		return nil, ErrNoActiveDraft
	}
	return s.getState(ctx, id)
}

// Pick drafts a player to a team. When teamName is blank the team on the
// clock takes the pick.
func (s *DraftService) Pick(ctx context.Context, draftID, teamName, playerID string) (PickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Pick")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PickResult{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return PickResult{}, err
	}
	order := state.Order()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		teamName = order.TeamForPick(state.NextPickNumber())
	} else if order.Index(teamName) < 0 {
		return PickResult{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, teamName)
	}

	players, err := s.playerRepo.GetByIDs(ctx, []string{playerID})
	if err != nil {
		return PickResult{}, fmt.Errorf("get player: %w", err)
	}
	if len(players) == 0 {
		return PickResult{}, fmt.Errorf("%w: player=%s", ErrPlayerNotFound, playerID)
	}
	picked := players[0]
	if !player.IsValidPosition(picked.Position) {
		return PickResult{}, fmt.Errorf("%w: %s", ErrInvalidPosition, picked.Position)
	}

	for _, id := range state.DraftedPlayerIDs() {
		if id == playerID {
			return PickResult{}, fmt.Errorf("%w: player=%s", ErrPlayerDrafted, playerID)
		}
	}

	grid, err := s.rosterRepo.Get(ctx, state.DraftID, teamName)
	if err != nil {
		return PickResult{}, fmt.Errorf("get roster: %w", err)
	}
	if !grid.HasAvailableSlotFor(picked.Position) {
		return PickResult{}, fmt.Errorf("%w: team=%s position=%s", ErrRosterFull, teamName, picked.Position)
	}

	pick := draft.Pick{
		PickNumber: state.NextPickNumber(),
		Round:      state.CurrentRound,
		TeamName:   teamName,
		PlayerID:   playerID,
		Timestamp:  s.now().UTC(),
	}
	entry := roster.Entry{
		PlayerID:   picked.ID,
		Name:       picked.Name,
		Position:   picked.Position,
		MLBTeam:    picked.MLBTeam,
		PickNumber: pick.PickNumber,
		Round:      pick.Round,
		Projection: picked.Projection,
	}
	slot, err := grid.Assign(entry)
	if err != nil {
		return PickResult{}, fmt.Errorf("%w: %v", ErrRosterFull, err)
	}
	if err := s.rosterRepo.Save(ctx, state.DraftID, grid); err != nil {
		return PickResult{}, fmt.Errorf("save roster: %w", err)
	}

	state.AddPick(pick)
	if err := s.draftRepo.Save(ctx, state); err != nil {
		return PickResult{}, fmt.Errorf("save draft: %w", err)
	}

	complete, err := s.isComplete(ctx, state)
	if err != nil {
		return PickResult{}, err
	}

	s.logger.InfoContext(ctx, "pick made",
		slog.String("draft_id", state.DraftID),
		slog.Int("pick", pick.PickNumber),
		slog.String("team", teamName),
		slog.String("player", picked.Name),
		slog.String("slot", string(slot)),
	)

	return PickResult{
		Pick:       pick,
		Slot:       slot,
		Player:     picked,
		NextTeam:   order.TeamForPick(state.NextPickNumber()),
		NextPick:   state.CurrentPick,
		NextRound:  state.CurrentRound,
		IsComplete: complete,
	}, nil
}

// Revert undoes the pick with the given overall number, restoring the
// counters to the state immediately preceding it.
func (s *DraftService) Revert(ctx context.Context, draftID string, pickNumber int) (*draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Revert")
	defer span.End()

	if pickNumber <= 0 {
		return nil, fmt.Errorf("%w: pick number must be positive", ErrInvalidInput)
	}

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}

	removed, ok := state.RemovePick(pickNumber)
	if !ok {
		return nil, fmt.Errorf("%w: pick=%d", ErrPickNotFound, pickNumber)
	}

	grid, err := s.rosterRepo.Get(ctx, state.DraftID, removed.TeamName)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}
	grid.RemoveByPick(pickNumber)
	if err := s.rosterRepo.Save(ctx, state.DraftID, grid); err != nil {
		return nil, fmt.Errorf("save roster: %w", err)
	}

	if err := s.draftRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.logger.InfoContext(ctx, "pick reverted",
		slog.String("draft_id", state.DraftID),
		slog.Int("pick", pickNumber),
		slog.String("team", removed.TeamName),
	)
	return state, nil
}

// Restart clears every pick and roster while keeping the draft configuration.
func (s *DraftService) Restart(ctx context.Context, draftID string) (*draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Restart")
	defer span.End()

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}

	fresh := draft.NewState(state.DraftID, state.LeagueName, state.Teams, state.RosterSize, state.MyTeamName)
	if err := s.rosterRepo.DeleteAll(ctx, state.DraftID); err != nil {
		return nil, fmt.Errorf("clear rosters: %w", err)
	}
	for _, team := range fresh.Teams {
		fresh.TeamRosters[team] = []string{}
		if err := s.rosterRepo.Save(ctx, fresh.DraftID, roster.NewGrid(team)); err != nil {
			return nil, fmt.Errorf("initialize roster for %s: %w", team, err)
		}
	}
	if err := s.draftRepo.Save(ctx, fresh); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.logger.InfoContext(ctx, "draft restarted", slog.String("draft_id", fresh.DraftID))
	return fresh, nil
}

// AvailablePlayers returns the undrafted pool sorted by ADP.
func (s *DraftService) AvailablePlayers(ctx context.Context, draftID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.AvailablePlayers")
	defer span.End()

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}

	all, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	drafted := make(map[string]bool, len(state.Picks))
	for _, id := range state.DraftedPlayerIDs() {
		drafted[id] = true
	}

	out := make([]player.Player, 0, len(all))
	for _, p := range all {
		if !drafted[p.ID] {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ADPOrUnranked() < out[j].ADPOrUnranked()
	})
	return out, nil
}

// TeamPlayers returns the players drafted by one team, in pick order.
func (s *DraftService) TeamPlayers(ctx context.Context, draftID, teamName string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.TeamPlayers")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if state.Order().Index(teamName) < 0 {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, teamName)
	}

	return s.playerRepo.GetByIDs(ctx, state.RosterFor(teamName))
}

// MyTeamPlayers returns the user's roster, in pick order.
func (s *DraftService) MyTeamPlayers(ctx context.Context, draftID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MyTeamPlayers")
	defer span.End()

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.playerRepo.GetByIDs(ctx, state.MyRoster())
}

// TeamRoster returns a team's position grid.
func (s *DraftService) TeamRoster(ctx context.Context, draftID, teamName string) (*roster.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.TeamRoster")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if state.Order().Index(teamName) < 0 {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, teamName)
	}
	return s.rosterRepo.Get(ctx, state.DraftID, teamName)
}

// IsComplete reports whether every roster is full and every required slot
// filled.
func (s *DraftService) IsComplete(ctx context.Context, draftID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.IsComplete")
	defer span.End()

	state, err := s.getState(ctx, draftID)
	if err != nil {
		return false, err
	}
	return s.isComplete(ctx, state)
}

func (s *DraftService) isComplete(ctx context.Context, state *draft.State) (bool, error) {
	if !state.RostersFull() {
		return false, nil
	}
	for _, team := range state.Teams {
		grid, err := s.rosterRepo.Get(ctx, state.DraftID, team)
		if err != nil {
			return false, fmt.Errorf("get roster: %w", err)
		}
		if !grid.RequiredFilled() {
			return false, nil
		}
	}
	return true, nil
}

func (s *DraftService) getState(ctx context.Context, draftID string) (*draft.State, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return nil, fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}
	state, ok, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: draft=%s", ErrDraftNotFound, draftID)
	}
	return state, nil
}

func (s *DraftService) setCurrent(draftID string) {
	s.mu.Lock()
	s.currentID = draftID
	s.mu.Unlock()
}
