package ml

import (
	"testing"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

func fp(v float64) *float64 { return &v }

func TestExtractFeatures_Hitter(t *testing.T) {
	hitter := player.Player{
		ID:       "h1",
		Name:     "Hitter One",
		Position: player.PositionOutfield,
		ADP:      fp(12),
		Projection: player.Projection{
			HomeRuns:    fp(30),
			OBP:         fp(0.360),
			Runs:        fp(95),
			RBI:         fp(88),
			StolenBases: fp(15),
		},
	}
	teammate := player.Player{ID: "h2", Position: player.PositionOutfield}
	arm := player.Player{ID: "p1", Position: player.PositionStarter}

	features := ExtractFeatures(hitter, PickContext{
		PickNumber: 20,
		Round:      2,
		TotalTeams: 13,
		Roster:     []player.Player{teammate, arm},
		Available:  []player.Player{hitter, teammate},
	})

	if len(features) != len(FeatureNames) {
		t.Fatalf("expected %d features, got %d", len(FeatureNames), len(features))
	}

	at := func(name string) float64 {
		for i, n := range FeatureNames {
			if n == name {
				return features[i]
			}
		}
		t.Fatalf("unknown feature %s", name)
		return 0
	}

	if at("adp") != 12 {
		t.Fatalf("adp feature wrong: %v", at("adp"))
	}
	if at("adp_deviation") != -8 {
		t.Fatalf("adp deviation wrong: %v", at("adp_deviation"))
	}
	if at("is_pitcher") != 0 {
		t.Fatal("hitter flagged as pitcher")
	}
	// Hitters contribute no ratio stats.
	if at("proj_era") != 0 || at("proj_whip") != 0 {
		t.Fatal("hitter must carry zero ERA/WHIP features")
	}
	if at("roster_filled") != 2 || at("roster_hitters") != 1 || at("roster_pitchers") != 1 {
		t.Fatal("roster composition features wrong")
	}
	// One OF teammate already rostered against a demand of four.
	if at("position_need") != 3 {
		t.Fatalf("position need wrong: %v", at("position_need"))
	}
	if at("position_scarcity_ratio") != 1.0 {
		t.Fatalf("scarcity ratio wrong: %v", at("position_scarcity_ratio"))
	}
}

func TestExtractFeatures_PitcherDefaults(t *testing.T) {
	arm := player.Player{
		ID:       "p1",
		Name:     "Arm One",
		Position: player.PositionStarter,
	}

	features := ExtractFeatures(arm, PickContext{PickNumber: 1, Round: 1, TotalTeams: 2})

	at := func(name string) float64 {
		for i, n := range FeatureNames {
			if n == name {
				return features[i]
			}
		}
		t.Fatalf("unknown feature %s", name)
		return 0
	}

	if at("is_pitcher") != 1 {
		t.Fatal("starter not flagged as pitcher")
	}
	// Missing ratios fall back to neutral defaults.
	if at("proj_era") != 5.0 || at("proj_whip") != 1.5 {
		t.Fatalf("pitcher defaults wrong: era=%v whip=%v", at("proj_era"), at("proj_whip"))
	}
	// Unranked players sort to the back of the draft.
	if at("adp") <= 500 {
		t.Fatalf("unranked adp should be a large sentinel, got %v", at("adp"))
	}
	if at("position_need") != 9 {
		t.Fatalf("empty staff should need nine arms, got %v", at("position_need"))
	}
}
