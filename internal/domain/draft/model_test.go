package draft

import (
	"testing"
	"time"
)

func TestState_AddPick_AdvancesCounters(t *testing.T) {
	state := NewState("d1", "Test League", []string{"Team 01", "Team 02", "Team 03"}, 2, "Team 01")

	for i := 1; i <= 4; i++ {
		state.AddPick(Pick{
			PickNumber: i,
			Round:      state.CurrentRound,
			TeamName:   "Team 01",
			PlayerID:   "p" + string(rune('0'+i)),
			Timestamp:  time.Now(),
		})
	}

	if state.CurrentRound != 2 || state.CurrentPick != 2 {
		t.Fatalf("after 4 picks in a 3-team draft expected round 2 pick 2, got round %d pick %d",
			state.CurrentRound, state.CurrentPick)
	}
	if state.NextPickNumber() != 5 {
		t.Fatalf("expected next pick number 5, got %d", state.NextPickNumber())
	}
}

func TestState_RemovePick_RestoresCounters(t *testing.T) {
	state := NewState("d1", "Test League", []string{"Team 01", "Team 02", "Team 03"}, 2, "Team 01")

	state.AddPick(Pick{PickNumber: 1, Round: 1, TeamName: "Team 01", PlayerID: "a"})
	state.AddPick(Pick{PickNumber: 2, Round: 1, TeamName: "Team 02", PlayerID: "b"})
	state.AddPick(Pick{PickNumber: 3, Round: 1, TeamName: "Team 03", PlayerID: "c"})
	state.AddPick(Pick{PickNumber: 4, Round: 2, TeamName: "Team 03", PlayerID: "d"})

	removed, ok := state.RemovePick(4)
	if !ok {
		t.Fatal("expected pick 4 to be removable")
	}
	if removed.PlayerID != "d" {
		t.Fatalf("expected player d removed, got %s", removed.PlayerID)
	}
	// Back to the state immediately before pick 4 was made.
	if state.CurrentRound != 2 || state.CurrentPick != 1 {
		t.Fatalf("expected round 2 pick 1 after revert, got round %d pick %d",
			state.CurrentRound, state.CurrentPick)
	}
	for _, id := range state.RosterFor("Team 03") {
		if id == "d" {
			t.Fatal("reverted player still on roster")
		}
	}

	if _, ok := state.RemovePick(99); ok {
		t.Fatal("expected missing pick number to report false")
	}
}

func TestState_RemovePick_EmptiesToStart(t *testing.T) {
	state := NewState("d1", "Test League", []string{"Team 01", "Team 02", "Team 03"}, 2, "Team 01")
	state.AddPick(Pick{PickNumber: 1, Round: 1, TeamName: "Team 01", PlayerID: "a"})

	if _, ok := state.RemovePick(1); !ok {
		t.Fatal("expected pick 1 to be removable")
	}
	if state.CurrentRound != 1 || state.CurrentPick != 1 {
		t.Fatalf("expected fresh draft counters, got round %d pick %d", state.CurrentRound, state.CurrentPick)
	}
	if len(state.Picks) != 0 {
		t.Fatalf("expected empty pick log, got %d entries", len(state.Picks))
	}
}

func TestState_RostersFull(t *testing.T) {
	state := NewState("d1", "Test League", []string{"Team 01", "Team 02"}, 1, "Team 01")
	state.TeamRosters["Team 01"] = []string{}
	state.TeamRosters["Team 02"] = []string{}

	if state.RostersFull() {
		t.Fatal("empty rosters must not be full")
	}

	state.AddPick(Pick{PickNumber: 1, Round: 1, TeamName: "Team 01", PlayerID: "a"})
	state.AddPick(Pick{PickNumber: 2, Round: 1, TeamName: "Team 02", PlayerID: "b"})

	if !state.RostersFull() {
		t.Fatal("expected rosters full once every team reaches roster size")
	}
}

func TestState_Clone_Independent(t *testing.T) {
	state := NewState("d1", "Test League", []string{"Team 01", "Team 02"}, 2, "Team 01")
	state.AddPick(Pick{PickNumber: 1, Round: 1, TeamName: "Team 01", PlayerID: "a"})

	clone := state.Clone()
	clone.AddPick(Pick{PickNumber: 2, Round: 1, TeamName: "Team 02", PlayerID: "b"})

	if len(state.Picks) != 1 {
		t.Fatalf("mutating a clone changed the original: %d picks", len(state.Picks))
	}
	if len(state.TeamRosters["Team 02"]) != 0 {
		t.Fatal("mutating a clone changed the original roster map")
	}
}
