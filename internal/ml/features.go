package ml

import (
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// PickContext is the draft situation a candidate is evaluated in.
type PickContext struct {
	PickNumber int
	Round      int
	TotalTeams int
	Roster     []player.Player
	Available  []player.Player
}

// FeatureNames orders the engineered feature vector. Keep in sync with
// ExtractFeatures.
var FeatureNames = []string{
	"adp",
	"pick_number",
	"round",
	"adp_deviation",
	"proj_hr",
	"proj_obp",
	"proj_runs",
	"proj_rbi",
	"proj_sb",
	"proj_wqs",
	"proj_k",
	"proj_sholds",
	"proj_era",
	"proj_whip",
	"is_pitcher",
	"roster_filled",
	"roster_hitters",
	"roster_pitchers",
	"position_scarcity_ratio",
	"position_need",
}

// ExtractFeatures engineers the model input for one (player, pick) pair.
// Missing projections fall back to neutral defaults so vectors stay dense.
func ExtractFeatures(p player.Player, ctx PickContext) []float64 {
	pr := p.Projection

	hitters, pitchers := 0, 0
	posCount := 0
	for _, teammate := range ctx.Roster {
		if teammate.IsPitcher() {
			pitchers++
		} else {
			hitters++
		}
		if teammate.Position == p.Position {
			posCount++
		}
	}

	atPos := 0
	for _, avail := range ctx.Available {
		if p.IsPitcher() {
			if avail.IsPitcher() {
				atPos++
			}
		} else if avail.Position == p.Position {
			atPos++
		}
	}
	scarcityRatio := 0.0
	if len(ctx.Available) > 0 {
		scarcityRatio = float64(atPos) / float64(len(ctx.Available))
	}

	need := float64(positionDemand(p.Position) - posCount)
	if need < 0 {
		need = 0
	}

	isPitcher := 0.0
	era, whip := 0.0, 0.0
	if p.IsPitcher() {
		isPitcher = 1.0
		era = derefOr(pr.ERA, 5.0)
		whip = derefOr(pr.WHIP, 1.5)
	}

	return []float64{
		p.ADPOrUnranked(),
		float64(ctx.PickNumber),
		float64(ctx.Round),
		p.ADPOrUnranked() - float64(ctx.PickNumber),
		derefOr(pr.HomeRuns, 0),
		derefOr(pr.OBP, 0.300),
		derefOr(pr.Runs, 0),
		derefOr(pr.RBI, 0),
		derefOr(pr.StolenBases, 0),
		derefOr(pr.Wins, 0) + derefOr(pr.QualityStarts, 0),
		derefOr(pr.Strikeouts, 0),
		derefOr(pr.Saves, 0) + 0.5*derefOr(pr.Holds, 0),
		era,
		whip,
		isPitcher,
		float64(len(ctx.Roster)),
		float64(hitters),
		float64(pitchers),
		scarcityRatio,
		need,
	}
}

// positionDemand is a team's slot demand per position, counting the shared
// pitcher pool as one bucket.
func positionDemand(pos player.Position) int {
	switch {
	case player.IsPitching(pos):
		return 9
	case pos == player.PositionOutfield:
		return 4
	default:
		return 1
	}
}

func derefOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
