package player

import "fmt"

// Position represents roster position categories used in draft rules.
type Position string

const (
	PositionCatcher    Position = "C"
	PositionFirstBase  Position = "1B"
	PositionSecondBase Position = "2B"
	PositionThirdBase  Position = "3B"
	PositionShortstop  Position = "SS"
	PositionOutfield   Position = "OF"
	PositionDH         Position = "DH"
	PositionStarter    Position = "SP"
	PositionReliever   Position = "RP"
	PositionPitcher    Position = "P"
)

var AllPositions = map[Position]struct{}{
	PositionCatcher:    {},
	PositionFirstBase:  {},
	PositionSecondBase: {},
	PositionThirdBase:  {},
	PositionShortstop:  {},
	PositionOutfield:   {},
	PositionDH:         {},
	PositionStarter:    {},
	PositionReliever:   {},
	PositionPitcher:    {},
}

// IsValidPosition reports whether pos is one of the draftable positions.
func IsValidPosition(pos Position) bool {
	_, ok := AllPositions[pos]
	return ok
}

// IsPitching reports whether a position string is a pitching position.
func IsPitching(pos Position) bool {
	switch pos {
	case PositionStarter, PositionReliever, PositionPitcher:
		return true
	default:
		return false
	}
}

// Projection holds a player's projected stat line for the league's ten
// scoring categories plus the raw pitching components behind them. Optional
// values use pointers so a missing projection can be told apart from a
// projected zero.
type Projection struct {
	HomeRuns       *float64 `json:"home_runs,omitempty"`
	OBP            *float64 `json:"obp,omitempty"`
	Runs           *float64 `json:"runs,omitempty"`
	RBI            *float64 `json:"rbi,omitempty"`
	StolenBases    *float64 `json:"stolen_bases,omitempty"`
	Wins           *float64 `json:"wins,omitempty"`
	QualityStarts  *float64 `json:"quality_starts,omitempty"`
	Strikeouts     *float64 `json:"strikeouts,omitempty"`
	ERA            *float64 `json:"era,omitempty"`
	WHIP           *float64 `json:"whip,omitempty"`
	Saves          *float64 `json:"saves,omitempty"`
	Holds          *float64 `json:"holds,omitempty"`
	InningsPitched *float64 `json:"innings_pitched,omitempty"`
}

// Risk holds projection-confidence scalars merged from scouting sources.
type Risk struct {
	InjuryScore          *float64 `json:"injury_score,omitempty"`           // 0-1, higher = riskier
	AgeDeclineFactor     *float64 `json:"age_decline_factor,omitempty"`     // multiplier, <1 for aging players
	SampleSizeConfidence *float64 `json:"sample_size_confidence,omitempty"` // 0-1
}

// Statcast holds the subset of Savant metrics the feature extractor uses.
type Statcast struct {
	ExitVelocity *float64 `json:"exit_velocity,omitempty"`
	BarrelRate   *float64 `json:"barrel_rate,omitempty"`
	HardHitRate  *float64 `json:"hard_hit_rate,omitempty"`
	XBA          *float64 `json:"xba,omitempty"`
	XWOBA        *float64 `json:"xwoba,omitempty"`
	SprintSpeed  *float64 `json:"sprint_speed,omitempty"`
	SpinRate     *float64 `json:"spin_rate,omitempty"`
	Velocity     *float64 `json:"velocity,omitempty"`
}

// ParkFactors holds home-park adjustment factors (100 = neutral).
type ParkFactors struct {
	Offense  *float64 `json:"offense,omitempty"`
	Pitching *float64 `json:"pitching,omitempty"`
	HomeRuns *float64 `json:"home_runs,omitempty"`
}

// Player is a draftable athlete in the unified player pool. Records are
// immutable once loaded; draft status lives on the draft state, not here.
type Player struct {
	ID         string      `json:"player_id"`
	Name       string      `json:"name"`
	Position   Position    `json:"position"`
	MLBTeam    string      `json:"team"`
	Age        *int        `json:"age,omitempty"`
	ADP        *float64    `json:"adp,omitempty"`
	Projection Projection  `json:"projection"`
	Risk       Risk        `json:"risk,omitempty"`
	Statcast   Statcast    `json:"statcast,omitempty"`
	Park       ParkFactors `json:"park_factors,omitempty"`
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	return nil
}

// IsPitcher reports whether the player occupies a pitching slot.
func (p Player) IsPitcher() bool {
	return IsPitching(p.Position)
}

func (p Player) IsHitter() bool {
	return !p.IsPitcher()
}

// UnrankedADP sorts after every realistic draft position. Players the feeds
// never ranked use it as their effective ADP.
const UnrankedADP = 999.0

func (p Player) ADPOrUnranked() float64 {
	if p.ADP == nil {
		return UnrankedADP
	}
	return *p.ADP
}
