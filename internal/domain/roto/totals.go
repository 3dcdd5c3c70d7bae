package roto

import "github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"

// League innings-pitched rules: a team whose staff projects under the floor
// cannot win pitching categories; a staff over the ceiling has its counting
// stats scaled back so stockpiling arms gains nothing past 1400 innings.
const (
	IPFloor   = 1000.0
	IPCeiling = 1400.0

	ipPerQualityStart = 6.5
	ipPerSave         = 1.0
	defaultStarterIP  = 150.0
	defaultRelieverIP = 60.0
)

// TeamTotals is a team's aggregate stat line across all scoring categories,
// recomputed per call from the roster. Raw pitching components (W, QS, SV,
// HLD) are kept alongside the composites built from them.
type TeamTotals struct {
	HomeRuns    float64 `json:"HR"`
	OBP         float64 `json:"OBP"`
	Runs        float64 `json:"R"`
	RBI         float64 `json:"RBI"`
	StolenBases float64 `json:"SB"`

	Wins          float64 `json:"W"`
	QualityStarts float64 `json:"QS"`
	Strikeouts    float64 `json:"K"`
	Saves         float64 `json:"SV"`
	Holds         float64 `json:"HLD"`
	WQS           float64 `json:"WQS"`
	SHOLDS        float64 `json:"SHOLDS"`
	ERA           float64 `json:"ERA"`
	WHIP          float64 `json:"WHIP"`

	InningsPitched float64 `json:"IP"`
	BelowIPFloor   bool    `json:"below_ip_floor"`
}

// Category returns the totals value for a scoring category.
func (t TeamTotals) Category(c Category) float64 {
	switch c {
	case CatHomeRuns:
		return t.HomeRuns
	case CatOBP:
		return t.OBP
	case CatRuns:
		return t.Runs
	case CatRBI:
		return t.RBI
	case CatStolenBases:
		return t.StolenBases
	case CatWQS:
		return t.WQS
	case CatStrikeouts:
		return t.Strikeouts
	case CatSHOLDS:
		return t.SHOLDS
	case CatERA:
		return t.ERA
	case CatWHIP:
		return t.WHIP
	default:
		return 0
	}
}

// EstimateIP returns a pitcher's projected innings, falling back to
// quality-start and save based estimates, then a positional default.
func EstimateIP(p player.Player) float64 {
	proj := p.Projection
	if proj.InningsPitched != nil {
		return *proj.InningsPitched
	}
	if proj.QualityStarts != nil && *proj.QualityStarts > 0 {
		return *proj.QualityStarts * ipPerQualityStart
	}
	if proj.Saves != nil && *proj.Saves > 0 {
		return *proj.Saves * ipPerSave
	}
	if p.Position == player.PositionStarter {
		return defaultStarterIP
	}
	return defaultRelieverIP
}

// ComputeTeamTotals aggregates a roster into category totals. Batting
// counting stats are summed, OBP is averaged across hitters, and ERA/WHIP
// are innings-weighted averages across pitchers.
func ComputeTeamTotals(roster []player.Player) TeamTotals {
	var t TeamTotals

	hitterCount := 0
	obpSum := 0.0
	totalIP := 0.0
	eraWeighted := 0.0
	whipWeighted := 0.0

	for _, p := range roster {
		proj := p.Projection
		if p.IsHitter() {
			hitterCount++
			t.HomeRuns += deref(proj.HomeRuns)
			t.Runs += deref(proj.Runs)
			t.RBI += deref(proj.RBI)
			t.StolenBases += deref(proj.StolenBases)
			obpSum += deref(proj.OBP)
			continue
		}

		ip := EstimateIP(p)
		totalIP += ip
		eraWeighted += deref(proj.ERA) * ip
		whipWeighted += deref(proj.WHIP) * ip

		t.Wins += deref(proj.Wins)
		t.QualityStarts += deref(proj.QualityStarts)
		t.Strikeouts += deref(proj.Strikeouts)
		t.Saves += deref(proj.Saves)
		t.Holds += deref(proj.Holds)
	}

	if hitterCount > 0 && obpSum > 0 {
		t.OBP = obpSum / float64(hitterCount)
	}

	if totalIP > IPCeiling {
		scale := IPCeiling / totalIP
		t.Wins *= scale
		t.QualityStarts *= scale
		t.Strikeouts *= scale
		t.Saves *= scale
		t.Holds *= scale
		eraWeighted *= scale
		whipWeighted *= scale
		totalIP = IPCeiling
	}

	t.WQS = t.Wins + t.QualityStarts
	t.SHOLDS = t.Saves + t.Holds*0.5

	if totalIP > 0 {
		if eraWeighted > 0 {
			t.ERA = eraWeighted / totalIP
		}
		if whipWeighted > 0 {
			t.WHIP = whipWeighted / totalIP
		}
	}

	t.InningsPitched = totalIP
	t.BelowIPFloor = totalIP < IPFloor

	return t
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
