package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roto"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/infrastructure/repository/memory"
)

func newStandingsFixture(t *testing.T) (*StandingsService, *draft.State) {
	t.Helper()

	draftRepo := memory.NewDraftRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())

	state := draft.NewState("d1", "Test League", []string{"Team A", "Team B"}, 2, "Team A")
	state.TeamRosters["Team A"] = []string{"seed-judge", "seed-skubal"}
	state.TeamRosters["Team B"] = []string{"seed-witt", "seed-clase"}
	if err := draftRepo.Save(t.Context(), state); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	return NewStandingsService(draftRepo, playerRepo, discardLogger()), state
}

func TestStandingsService_Standings(t *testing.T) {
	svc, _ := newStandingsFixture(t)

	standings, err := svc.Standings(t.Context(), "d1")
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(standings.FinalOrder) != 2 {
		t.Fatalf("expected 2 teams in final order, got %d", len(standings.FinalOrder))
	}

	// Two teams split a 2+1 pool in each batting category. Both staffs are
	// far under the innings floor, so every pitching category pays the flat
	// 1 point per team: 5*3 + 5*2 = 25.
	sum := 0.0
	for _, pts := range standings.TotalPoints {
		sum += pts
	}
	if math.Abs(sum-25) > 1e-9 {
		t.Fatalf("expected total points to sum to 25, got %v", sum)
	}
	for _, team := range standings.FinalOrder {
		if !standings.Totals[team].BelowIPFloor {
			t.Fatalf("expected %s below the innings floor", team)
		}
	}

	for _, cat := range roto.ScoringCategories() {
		if len(standings.Rankings[cat]) != 2 {
			t.Fatalf("category %s missing rankings", cat)
		}
	}

	if _, err := svc.Standings(t.Context(), "missing"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestStandingsService_CachesByRosterSignature(t *testing.T) {
	svc, state := newStandingsFixture(t)

	first, err := svc.Standings(t.Context(), "d1")
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	second, err := svc.Standings(t.Context(), "d1")
	if err != nil {
		t.Fatalf("cached standings failed: %v", err)
	}
	if first.TotalPoints["Team A"] != second.TotalPoints["Team A"] {
		t.Fatal("cached result diverged from computed result")
	}

	// A roster change produces a fresh signature and a recompute.
	state.TeamRosters["Team A"] = append(state.TeamRosters["Team A"], "seed-soto")
	if err := svc.draftRepo.Save(t.Context(), state); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	third, err := svc.Standings(t.Context(), "d1")
	if err != nil {
		t.Fatalf("standings after pick failed: %v", err)
	}
	if third.Totals["Team A"].HomeRuns <= second.Totals["Team A"].HomeRuns {
		t.Fatal("expected Team A totals to grow after adding a hitter")
	}
}

func TestStandingsService_Preview(t *testing.T) {
	svc, _ := newStandingsFixture(t)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())

	extras, err := playerRepo.GetByIDs(t.Context(), []string{"seed-soto"})
	if err != nil || len(extras) != 1 {
		t.Fatalf("seed player lookup failed: %v", err)
	}

	base, err := svc.Standings(t.Context(), "d1")
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	preview, err := svc.Preview(t.Context(), "d1", "Team B", extras[0])
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.Totals["Team B"].HomeRuns <= base.Totals["Team B"].HomeRuns {
		t.Fatal("expected previewed roster to add home runs")
	}
	if preview.Totals["Team A"].HomeRuns != base.Totals["Team A"].HomeRuns {
		t.Fatal("preview must not change other rosters")
	}
}

func TestRosterSignature_OrderIndependent(t *testing.T) {
	a := player.Player{ID: "a"}
	b := player.Player{ID: "b"}

	sig1 := rosterSignature("d1", map[string][]player.Player{"Team A": {a, b}})
	sig2 := rosterSignature("d1", map[string][]player.Player{"Team A": {b, a}})
	if sig1 != sig2 {
		t.Fatal("signature must not depend on roster order")
	}

	sig3 := rosterSignature("d1", map[string][]player.Player{"Team A": {a}})
	if sig1 == sig3 {
		t.Fatal("different rosters must hash differently")
	}
}
