package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDraftService(players []player.Player) *DraftService {
	return NewDraftService(
		memory.NewDraftRepository(),
		memory.NewRosterRepository(),
		memory.NewPlayerRepository(players),
		discardLogger(),
	)
}

func testDraftParams() CreateDraftParams {
	return CreateDraftParams{
		DraftID:    "d1",
		LeagueName: "Test League",
		Teams:      []string{"Team A", "Team B", "Team C"},
		RosterSize: 3,
		MyTeamName: "Team A",
	}
}

func makePitchers(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 0; i < n; i++ {
		adp := float64(i + 1)
		ip := 180.0
		out = append(out, player.Player{
			ID:       fmt.Sprintf("p%02d", i+1),
			Name:     fmt.Sprintf("Pitcher %02d", i+1),
			Position: player.PositionStarter,
			MLBTeam:  "TST",
			ADP:      &adp,
			Projection: player.Projection{
				InningsPitched: &ip,
			},
		})
	}
	return out
}

func TestDraftService_Create(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())

	state, err := svc.Create(t.Context(), testDraftParams())
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if state.TotalTeams != 3 || state.CurrentRound != 1 || state.CurrentPick != 1 {
		t.Fatalf("unexpected initial state: %+v", state)
	}
	if len(state.TeamRosters) != 3 {
		t.Fatalf("expected rosters for every team, got %d", len(state.TeamRosters))
	}

	current, err := svc.Current(t.Context())
	if err != nil {
		t.Fatalf("current draft failed: %v", err)
	}
	if current.DraftID != "d1" {
		t.Fatalf("expected created draft to be current, got %s", current.DraftID)
	}
}

func TestDraftService_Create_GeneratesDraftID(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())

	params := testDraftParams()
	params.DraftID = ""
	state, err := svc.Create(t.Context(), params)
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if state.DraftID == "" {
		t.Fatalf("expected a generated draft id")
	}
}

func TestDraftService_Create_MyTeamMustBeListed(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())

	params := testDraftParams()
	params.MyTeamName = "Not A Team"
	if _, err := svc.Create(t.Context(), params); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDraftService_Current_NoActiveDraft(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())

	if _, err := svc.Current(t.Context()); !errors.Is(err, ErrNoActiveDraft) {
		t.Fatalf("expected ErrNoActiveDraft, got %v", err)
	}
}

func TestDraftService_Pick(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())
	if _, err := svc.Create(t.Context(), testDraftParams()); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	// blank team name drafts for the team on the clock
	res, err := svc.Pick(t.Context(), "d1", "", "seed-judge")
	if err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	if res.Pick.TeamName != "Team A" || res.Pick.PickNumber != 1 {
		t.Fatalf("expected Team A pick 1, got %+v", res.Pick)
	}
	if res.Slot != "OF" {
		t.Fatalf("expected outfield slot, got %s", res.Slot)
	}
	if res.NextTeam != "Team B" {
		t.Fatalf("expected Team B on the clock, got %s", res.NextTeam)
	}

	if _, err := svc.Pick(t.Context(), "d1", "Team B", "seed-judge"); !errors.Is(err, ErrPlayerDrafted) {
		t.Fatalf("expected ErrPlayerDrafted, got %v", err)
	}
	if _, err := svc.Pick(t.Context(), "d1", "Team B", "nobody"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, err := svc.Pick(t.Context(), "d1", "Team Z", "seed-witt"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown team, got %v", err)
	}

	available, err := svc.AvailablePlayers(t.Context(), "d1")
	if err != nil {
		t.Fatalf("available players failed: %v", err)
	}
	for _, p := range available {
		if p.ID == "seed-judge" {
			t.Fatal("drafted player still listed as available")
		}
	}

	team, err := svc.TeamPlayers(t.Context(), "d1", "Team A")
	if err != nil {
		t.Fatalf("team players failed: %v", err)
	}
	if len(team) != 1 || team[0].ID != "seed-judge" {
		t.Fatalf("expected Team A roster of one, got %+v", team)
	}
}

func TestDraftService_Pick_RosterFull(t *testing.T) {
	svc := newDraftService(makePitchers(12))

	params := CreateDraftParams{
		DraftID:    "d1",
		LeagueName: "Test League",
		Teams:      []string{"Team A", "Team B"},
		RosterSize: 12,
		MyTeamName: "Team A",
	}
	if _, err := svc.Create(t.Context(), params); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	// nine pitcher slots plus the bench take ten pitchers
	for i := 1; i <= 10; i++ {
		if _, err := svc.Pick(t.Context(), "d1", "Team A", fmt.Sprintf("p%02d", i)); err != nil {
			t.Fatalf("pick %d failed: %v", i, err)
		}
	}
	if _, err := svc.Pick(t.Context(), "d1", "Team A", "p11"); !errors.Is(err, ErrRosterFull) {
		t.Fatalf("expected ErrRosterFull, got %v", err)
	}
}

func TestDraftService_Revert(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())
	if _, err := svc.Create(t.Context(), testDraftParams()); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	if _, err := svc.Pick(t.Context(), "d1", "", "seed-judge"); err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	state, err := svc.Revert(t.Context(), "d1", 1)
	if err != nil {
		t.Fatalf("revert failed: %v", err)
	}
	if state.CurrentRound != 1 || state.CurrentPick != 1 || len(state.Picks) != 0 {
		t.Fatalf("expected fresh draft counters after revert, got %+v", state)
	}

	grid, err := svc.TeamRoster(t.Context(), "d1", "Team A")
	if err != nil {
		t.Fatalf("team roster failed: %v", err)
	}
	if grid.Count() != 0 {
		t.Fatalf("expected empty roster after revert, got %d entries", grid.Count())
	}

	if _, err := svc.Revert(t.Context(), "d1", 99); !errors.Is(err, ErrPickNotFound) {
		t.Fatalf("expected ErrPickNotFound, got %v", err)
	}
}

func TestDraftService_Restart(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())
	if _, err := svc.Create(t.Context(), testDraftParams()); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if _, err := svc.Pick(t.Context(), "d1", "", "seed-judge"); err != nil {
		t.Fatalf("pick failed: %v", err)
	}

	state, err := svc.Restart(t.Context(), "d1")
	if err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if len(state.Picks) != 0 || state.CurrentRound != 1 || state.CurrentPick != 1 {
		t.Fatalf("expected clean state after restart, got %+v", state)
	}

	grid, err := svc.TeamRoster(t.Context(), "d1", "Team A")
	if err != nil {
		t.Fatalf("team roster failed: %v", err)
	}
	if grid.Count() != 0 {
		t.Fatalf("expected empty roster after restart, got %d entries", grid.Count())
	}
}

func TestDraftService_DraftNotFound(t *testing.T) {
	svc := newDraftService(memory.SeedPlayers())

	if _, err := svc.Load(t.Context(), "missing"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
	if _, err := svc.AvailablePlayers(t.Context(), "missing"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}
