package file

import (
	"testing"
	"time"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roster"
)

func TestDraftRepository_RoundTrip(t *testing.T) {
	repo := NewDraftRepository(t.TempDir())
	ctx := t.Context()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing draft, got ok=%v err=%v", ok, err)
	}

	state := draft.NewState("d1", "Test League", []string{"Team A", "Team B"}, 23, "Team A")
	state.AddPick(draft.Pick{
		PickNumber: 1,
		Round:      1,
		TeamName:   "Team A",
		PlayerID:   "seed-judge",
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	loaded, ok, err := repo.Get(ctx, "d1")
	if err != nil || !ok {
		t.Fatalf("load draft: ok=%v err=%v", ok, err)
	}
	if loaded.LeagueName != "Test League" || loaded.TotalTeams != 2 {
		t.Fatalf("unexpected loaded draft: %+v", loaded)
	}
	if len(loaded.Picks) != 1 || loaded.Picks[0].PlayerID != "seed-judge" {
		t.Fatalf("picks not persisted: %+v", loaded.Picks)
	}
	if got := loaded.RosterFor("Team A"); len(got) != 1 || got[0] != "seed-judge" {
		t.Fatalf("team rosters not persisted: %v", got)
	}
	if loaded.CurrentRound != 1 || loaded.CurrentPick != 2 {
		t.Fatalf("counters not persisted: round=%d pick=%d", loaded.CurrentRound, loaded.CurrentPick)
	}
}

func TestDraftRepository_SaveOverwrites(t *testing.T) {
	repo := NewDraftRepository(t.TempDir())
	ctx := t.Context()

	state := draft.NewState("d1", "League", []string{"Team A", "Team B"}, 23, "Team A")
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	state.AddPick(draft.Pick{PickNumber: 1, Round: 1, TeamName: "Team A", PlayerID: "seed-witt"})
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("resave draft: %v", err)
	}

	loaded, _, err := repo.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if len(loaded.Picks) != 1 {
		t.Fatalf("expected overwritten state with 1 pick, got %d", len(loaded.Picks))
	}
}

func TestDraftRepository_Delete(t *testing.T) {
	repo := NewDraftRepository(t.TempDir())
	ctx := t.Context()

	if err := repo.Delete(ctx, "never-saved"); err != nil {
		t.Fatalf("delete of absent draft should be a no-op: %v", err)
	}

	state := draft.NewState("d1", "League", []string{"Team A", "Team B"}, 23, "Team A")
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if err := repo.Delete(ctx, "d1"); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	if _, ok, err := repo.Get(ctx, "d1"); err != nil || ok {
		t.Fatalf("draft should be gone, got ok=%v err=%v", ok, err)
	}
}

func TestRosterRepository_GetReturnsEmptyGrid(t *testing.T) {
	repo := NewRosterRepository(t.TempDir())

	grid, err := repo.Get(t.Context(), "d1", "Team A")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if grid.TeamName != "Team A" || grid.Count() != 0 {
		t.Fatalf("expected fresh empty grid, got %+v", grid)
	}
}

func TestRosterRepository_SavePickRoundTrip(t *testing.T) {
	repo := NewRosterRepository(t.TempDir())
	ctx := t.Context()

	entry := roster.Entry{
		PlayerID:   "seed-judge",
		Name:       "Aaron Judge",
		Position:   player.PositionOutfield,
		MLBTeam:    "NYY",
		PickNumber: 1,
		Round:      1,
	}
	if err := repo.SavePick(ctx, "d1", "Team A", entry); err != nil {
		t.Fatalf("save pick: %v", err)
	}

	grid, err := repo.Get(ctx, "d1", "Team A")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if grid.Count() != 1 || !grid.Contains("seed-judge") {
		t.Fatalf("pick not persisted: %+v", grid)
	}
	entries := grid.Entries()
	if len(entries) != 1 || entries[0].Name != "Aaron Judge" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestRosterRepository_SavePick_DuplicateRejected(t *testing.T) {
	repo := NewRosterRepository(t.TempDir())
	ctx := t.Context()

	entry := roster.Entry{PlayerID: "seed-judge", Position: player.PositionOutfield, PickNumber: 1}
	if err := repo.SavePick(ctx, "d1", "Team A", entry); err != nil {
		t.Fatalf("save pick: %v", err)
	}
	if err := repo.SavePick(ctx, "d1", "Team A", entry); err == nil {
		t.Fatal("expected duplicate player to be rejected")
	}
}

func TestRosterRepository_DeletePick(t *testing.T) {
	repo := NewRosterRepository(t.TempDir())
	ctx := t.Context()

	entry := roster.Entry{PlayerID: "seed-judge", Position: player.PositionOutfield, PickNumber: 7}
	if err := repo.SavePick(ctx, "d1", "Team A", entry); err != nil {
		t.Fatalf("save pick: %v", err)
	}
	if err := repo.DeletePick(ctx, "d1", "Team A", 7); err != nil {
		t.Fatalf("delete pick: %v", err)
	}
	grid, err := repo.Get(ctx, "d1", "Team A")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if grid.Count() != 0 {
		t.Fatalf("pick should be removed, count=%d", grid.Count())
	}

	if err := repo.DeletePick(ctx, "d1", "Team A", 99); err != nil {
		t.Fatalf("delete of absent pick should be a no-op: %v", err)
	}
}

func TestRosterRepository_DeleteAll(t *testing.T) {
	repo := NewRosterRepository(t.TempDir())
	ctx := t.Context()

	for i, team := range []string{"Team A", "Team B"} {
		entry := roster.Entry{
			PlayerID:   "p" + team,
			Position:   player.PositionOutfield,
			PickNumber: i + 1,
		}
		if err := repo.SavePick(ctx, "d1", team, entry); err != nil {
			t.Fatalf("save pick for %s: %v", team, err)
		}
	}

	if err := repo.DeleteAll(ctx, "d1"); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	for _, team := range []string{"Team A", "Team B"} {
		grid, err := repo.Get(ctx, "d1", team)
		if err != nil {
			t.Fatalf("get roster: %v", err)
		}
		if grid.Count() != 0 {
			t.Fatalf("roster for %s should be empty after delete all", team)
		}
	}
}

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"d1":             "d1",
		"Team A":         "Team_A",
		"../escape":      ".._escape",
		"draft/2026#01":  "draft_2026_01",
		"plain-ok_v1.例子": "plain-ok_v1.__",
	}
	for in, want := range cases {
		if got := safeName(in); got != want {
			t.Errorf("safeName(%q) = %q, want %q", in, got, want)
		}
	}
}
