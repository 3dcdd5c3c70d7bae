package usecase

import (
	"fmt"
	"math"
	"testing"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

func fp(v float64) *float64 { return &v }

// makeShortstops builds a pool where HR declines linearly with ADP, so the
// replacement band average is easy to reason about.
func makeShortstops(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, player.Player{
			ID:       fmt.Sprintf("ss%02d", i+1),
			Name:     fmt.Sprintf("Shortstop %02d", i+1),
			Position: player.PositionShortstop,
			MLBTeam:  "TST",
			ADP:      fp(float64(i + 1)),
			Projection: player.Projection{
				HomeRuns:    fp(float64(40 - i)),
				OBP:         fp(0.340),
				Runs:        fp(90),
				RBI:         fp(85),
				StolenBases: fp(12),
			},
		})
	}
	return out
}

func TestVORPCalculator_ReplacementLevel(t *testing.T) {
	calc := NewVORPCalculator()
	pool := makeShortstops(30)

	level := calc.ReplacementLevel(player.PositionShortstop, pool)

	// The band is players ranked 15..25 (0-indexed 15..24), whose HR run
	// 25 down to 16, averaging 20.5.
	if got := level["HR"]; got != 20.5 {
		t.Fatalf("expected replacement HR 20.5, got %v", got)
	}
	if got := level["OBP"]; math.Abs(got-0.340) > 1e-9 {
		t.Fatalf("expected replacement OBP 0.340, got %v", got)
	}

	// Cached per (position, pool size).
	again := calc.ReplacementLevel(player.PositionShortstop, pool)
	if again["HR"] != level["HR"] {
		t.Fatal("cached replacement level diverged")
	}
}

func TestVORPCalculator_ReplacementLevel_ShallowPool(t *testing.T) {
	calc := NewVORPCalculator()
	pool := makeShortstops(8)

	level := calc.ReplacementLevel(player.PositionShortstop, pool)
	if len(level) == 0 {
		t.Fatal("expected a fallback band for a shallow pool")
	}
	// Last-5 fallback: HR 37..33 averages 35.
	if got := level["HR"]; got != 35 {
		t.Fatalf("expected fallback replacement HR 35, got %v", got)
	}

	if empty := calc.ReplacementLevel(player.PositionCatcher, pool); len(empty) != 0 {
		t.Fatalf("expected empty level for a position with no players, got %v", empty)
	}
}

func TestVORPCalculator_CalculateVORP(t *testing.T) {
	calc := NewVORPCalculator()
	pool := makeShortstops(30)

	best := calc.CalculateVORP(pool[0], pool)
	worst := calc.CalculateVORP(pool[len(pool)-1], pool)

	if best.Score <= worst.Score {
		t.Fatalf("top pick must outscore the last pick: %v <= %v", best.Score, worst.Score)
	}
	// HR 40 vs replacement 20.5; every other category matches replacement.
	if got := best.CategoryContributions["HR"]; got != 19.5 {
		t.Fatalf("expected HR contribution 19.5, got %v", got)
	}
	if best.Tier == "Replacement" {
		t.Fatalf("top pick should not grade at replacement, got %s", best.Tier)
	}
	if worst.Score >= 0 && worst.Tier != "Below Average" && worst.Tier != "Average" {
		t.Fatalf("unexpected tier for last pick: %s", worst.Tier)
	}
}

func TestVORPCalculator_CalculateVORP_Pitcher(t *testing.T) {
	calc := NewVORPCalculator()

	pool := make([]player.Player, 0, 90)
	for i := 0; i < 90; i++ {
		pool = append(pool, player.Player{
			ID:       fmt.Sprintf("sp%02d", i+1),
			Name:     fmt.Sprintf("Starter %02d", i+1),
			Position: player.PositionStarter,
			MLBTeam:  "TST",
			ADP:      fp(float64(i + 1)),
			Projection: player.Projection{
				Wins:           fp(float64(18 - i/10)),
				QualityStarts:  fp(float64(20 - i/10)),
				Strikeouts:     fp(float64(220 - i)),
				ERA:            fp(3.0 + float64(i)*0.02),
				WHIP:           fp(1.00 + float64(i)*0.005),
				InningsPitched: fp(180),
			},
		})
	}

	ace := calc.CalculateVORP(pool[0], pool)
	if ace.Score <= 0 {
		t.Fatalf("expected the ace above replacement, got %v", ace.Score)
	}
	if ace.CategoryContributions["ERA"] <= 0 {
		t.Fatal("lower ERA than replacement must contribute positively")
	}
	back := calc.CalculateVORP(pool[len(pool)-1], pool)
	if back.Score >= ace.Score {
		t.Fatalf("back-end starter must trail the ace: %v >= %v", back.Score, ace.Score)
	}
}

func TestVORPTiers(t *testing.T) {
	cases := []struct {
		score float64
		tier  string
	}{
		{95, "Elite"},
		{80, "Elite"},
		{60, "Above Average"},
		{30, "Average"},
		{5, "Below Average"},
		{-10, "Replacement"},
	}
	for _, tc := range cases {
		if got := vorpTier(tc.score); got != tc.tier {
			t.Fatalf("score %v: expected %s, got %s", tc.score, tc.tier, got)
		}
	}
}

func TestVORPCalculator_OpponentNeeds(t *testing.T) {
	calc := NewVORPCalculator()
	pool := makeShortstops(3)
	index := map[string]player.Player{}
	for _, p := range pool {
		index[p.ID] = p
	}

	state := draft.NewState("d1", "Test League", []string{"Team A", "Team B"}, 23, "Team A")
	state.TeamRosters["Team A"] = []string{"ss01"}
	state.TeamRosters["Team B"] = []string{"ss02", "ss03"}

	needs := calc.OpponentNeeds(state, index)
	if _, ok := needs["Team A"]; ok {
		t.Fatal("own team must be excluded from opponent needs")
	}

	teamB := needs["Team B"]
	if teamB["SS"] != 0 {
		t.Fatalf("Team B has two shortstops, expected no SS need, got %d", teamB["SS"])
	}
	if teamB["P"] != 9 {
		t.Fatalf("expected full pitching need 9, got %d", teamB["P"])
	}
	if teamB["OF"] != 4 {
		t.Fatalf("expected outfield need 4, got %d", teamB["OF"])
	}
}

func TestVORPCalculator_FindBlockingOpportunities(t *testing.T) {
	calc := NewVORPCalculator()
	pool := makeShortstops(10)

	state := draft.NewState("d1", "Test League", []string{"Team A", "Team B", "Team C"}, 23, "Team A")
	opponentNeeds := map[string]map[string]int{
		"Team B": {"SS": 1},
		"Team C": {},
	}

	// Top shortstop by ADP: a genuine block on Team B.
	blocks := calc.FindBlockingOpportunities(pool[0], state, pool, opponentNeeds)
	if len(blocks) != 1 {
		t.Fatalf("expected one blocking opportunity, got %d", len(blocks))
	}
	b := blocks[0]
	if b.OpponentTeam != "Team B" || b.PositionNeeded != "SS" {
		t.Fatalf("unexpected block: %+v", b)
	}
	if b.Urgency <= 0.3 {
		t.Fatalf("expected urgency above the reporting floor, got %v", b.Urgency)
	}

	// The last shortstop blocks nobody meaningfully: non-top urgency is
	// need/required*0.5 = 0.5, still reported, but ranked by urgency.
	tail := calc.FindBlockingOpportunities(pool[len(pool)-1], state, pool, opponentNeeds)
	for _, blk := range tail {
		if blk.Urgency > b.Urgency {
			t.Fatalf("tail pick cannot be more urgent than the top pick: %v > %v", blk.Urgency, b.Urgency)
		}
	}
}

func TestVORPCalculator_ScarcityTier(t *testing.T) {
	calc := NewVORPCalculator()

	pool := makeShortstops(10) // ADP 1..10, all elite
	tier, elite := calc.ScarcityTier(player.PositionShortstop, pool, 3)
	if tier != "Available" || elite != 10 {
		t.Fatalf("expected Available/10, got %s/%d", tier, elite)
	}

	tier, _ = calc.ScarcityTier(player.PositionShortstop, pool[:6], 3)
	if tier != "Scarce" {
		t.Fatalf("expected Scarce with 6 elites, got %s", tier)
	}
	tier, _ = calc.ScarcityTier(player.PositionShortstop, pool[:2], 3)
	if tier != "Critical" {
		t.Fatalf("expected Critical with 2 elites, got %s", tier)
	}
	tier, _ = calc.ScarcityTier(player.PositionShortstop, nil, 3)
	if tier != "Dried Up" {
		t.Fatalf("expected Dried Up with no players, got %s", tier)
	}

	tier, _ = calc.ScarcityTier(player.PositionShortstop, pool, 14)
	if tier != "Thinning" {
		t.Fatalf("expected Thinning late in the draft, got %s", tier)
	}
}
