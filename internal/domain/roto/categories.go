package roto

import "strings"

// Category is one of the league's ten scoring categories. WQS and SHOLDS are
// the canonical composite names; historical feeds that reported "QS" or "S"
// for the composites are mapped here at ingestion and nowhere else.
type Category string

const (
	CatHomeRuns    Category = "HR"
	CatOBP         Category = "OBP"
	CatRuns        Category = "R"
	CatRBI         Category = "RBI"
	CatStolenBases Category = "SB"
	CatWQS         Category = "WQS"    // wins + quality starts
	CatStrikeouts  Category = "K"
	CatSHOLDS      Category = "SHOLDS" // saves + 0.5*holds
	CatERA         Category = "ERA"
	CatWHIP        Category = "WHIP"
)

var battingCategories = []Category{CatHomeRuns, CatOBP, CatRuns, CatRBI, CatStolenBases}
var pitchingCategories = []Category{CatWQS, CatStrikeouts, CatSHOLDS, CatERA, CatWHIP}

func BattingCategories() []Category {
	return append([]Category(nil), battingCategories...)
}

func PitchingCategories() []Category {
	return append([]Category(nil), pitchingCategories...)
}

// ScoringCategories returns all ten categories, batting first.
func ScoringCategories() []Category {
	out := make([]Category, 0, len(battingCategories)+len(pitchingCategories))
	out = append(out, battingCategories...)
	out = append(out, pitchingCategories...)
	return out
}

func IsPitchingCategory(c Category) bool {
	switch c {
	case CatWQS, CatStrikeouts, CatSHOLDS, CatERA, CatWHIP:
		return true
	default:
		return false
	}
}

// LowerIsBetter reports whether a lower value ranks higher.
func LowerIsBetter(c Category) bool {
	return c == CatERA || c == CatWHIP
}

// Canonical resolves a category name from any historical feed spelling.
func Canonical(name string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "HR":
		return CatHomeRuns, true
	case "OBP":
		return CatOBP, true
	case "R", "RUNS":
		return CatRuns, true
	case "RBI":
		return CatRBI, true
	case "SB":
		return CatStolenBases, true
	case "WQS", "QS":
		return CatWQS, true
	case "K", "SO":
		return CatStrikeouts, true
	case "SHOLDS", "S":
		return CatSHOLDS, true
	case "ERA":
		return CatERA, true
	case "WHIP":
		return CatWHIP, true
	default:
		return "", false
	}
}
