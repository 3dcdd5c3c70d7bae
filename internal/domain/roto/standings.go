package roto

import (
	"math"
	"sort"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// Standings is the full roto scoring output for one set of rosters.
type Standings struct {
	Totals      map[string]TeamTotals          `json:"category_totals"`
	Rankings    map[Category][]string          `json:"category_rankings"`
	Points      map[Category]map[string]float64 `json:"category_points"`
	TotalPoints map[string]float64             `json:"total_points"`
	FinalOrder  []string                       `json:"final_rankings"`
}

// ComputeStandings aggregates every roster and scores all ten categories.
func ComputeStandings(rosters map[string][]player.Player) Standings {
	totals := make(map[string]TeamTotals, len(rosters))
	for team, roster := range rosters {
		totals[team] = ComputeTeamTotals(roster)
	}
	return ComputeStandingsFromTotals(totals)
}

// ComputeStandingsFromTotals scores precomputed team totals. Callers that
// parallelize or cache total computation use this entry point.
func ComputeStandingsFromTotals(totals map[string]TeamTotals) Standings {
	numTeams := len(totals)

	s := Standings{
		Totals:      totals,
		Rankings:    make(map[Category][]string, 10),
		Points:      make(map[Category]map[string]float64, 10),
		TotalPoints: make(map[string]float64, numTeams),
	}

	for _, cat := range ScoringCategories() {
		ranked, points := scoreCategory(cat, totals, numTeams)
		s.Rankings[cat] = ranked
		s.Points[cat] = points
		for team, pts := range points {
			s.TotalPoints[team] += pts
		}
	}

	s.FinalOrder = make([]string, 0, numTeams)
	for team := range totals {
		s.FinalOrder = append(s.FinalOrder, team)
	}
	sort.Slice(s.FinalOrder, func(i, j int) bool {
		a, b := s.FinalOrder[i], s.FinalOrder[j]
		if s.TotalPoints[a] != s.TotalPoints[b] {
			return s.TotalPoints[a] > s.TotalPoints[b]
		}
		return a < b
	})

	return s
}

// Rank returns a team's 1-indexed rank in a category, or len+1 when absent.
func (s Standings) Rank(team string, cat Category) int {
	ranking := s.Rankings[cat]
	for i, t := range ranking {
		if t == team {
			return i + 1
		}
	}
	return len(ranking) + 1
}

type teamValue struct {
	team  string
	value float64
}

// scoreCategory ranks one category and allocates roto points: the best team
// gets numTeams points, the worst gets 1. Teams tied on the rounded value
// split the points for the ranks they jointly occupy. In pitching
// categories, teams below the innings floor rank behind every team meeting
// it and receive a flat 1 point rather than a tie-split share.
func scoreCategory(cat Category, totals map[string]TeamTotals, numTeams int) ([]string, map[string]float64) {
	eligible := make([]teamValue, 0, numTeams)
	var belowFloor []teamValue

	pitching := IsPitchingCategory(cat)
	for team, t := range totals {
		tv := teamValue{team: team, value: t.Category(cat)}
		if pitching && t.BelowIPFloor {
			belowFloor = append(belowFloor, tv)
			continue
		}
		eligible = append(eligible, tv)
	}

	asc := LowerIsBetter(cat)
	sortTeamValues(eligible, asc)
	sortTeamValues(belowFloor, asc)

	points := make(map[string]float64, numTeams)

	// Walk tie groups over the eligible teams. A group occupying ranks
	// i..i+k-1 splits the sum of (numTeams - rank + 1) across those ranks.
	for i := 0; i < len(eligible); {
		j := i + 1
		for j < len(eligible) && roundCategoryValue(eligible[j].value) == roundCategoryValue(eligible[i].value) {
			j++
		}
		sum := 0.0
		for rank := i + 1; rank <= j; rank++ {
			sum += float64(numTeams - rank + 1)
		}
		share := sum / float64(j-i)
		for k := i; k < j; k++ {
			points[eligible[k].team] = share
		}
		i = j
	}

	for _, tv := range belowFloor {
		points[tv.team] = 1
	}

	ranked := make([]string, 0, numTeams)
	for _, tv := range eligible {
		ranked = append(ranked, tv.team)
	}
	for _, tv := range belowFloor {
		ranked = append(ranked, tv.team)
	}

	return ranked, points
}

func sortTeamValues(values []teamValue, asc bool) {
	sort.Slice(values, func(i, j int) bool {
		if values[i].value != values[j].value {
			if asc {
				return values[i].value < values[j].value
			}
			return values[i].value > values[j].value
		}
		return values[i].team < values[j].team
	})
}

// Rate categories are compared at three decimals; counting categories end up
// unaffected by the rounding.
func roundCategoryValue(v float64) float64 {
	return math.Round(v*1000) / 1000
}
