package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// component weights combining the three heuristic signals.
const (
	scarcityWeight = 0.3
	needsWeight    = 0.3
	valueWeight    = 0.4
)

// league roster shape: 11 hitter slots (C 1B 2B 3B SS MI CI OF×4 U) and 9
// pitcher slots.
const (
	hitterSlotsPerTeam  = 11
	pitcherSlotsPerTeam = 9
)

// PredictionContext carries the pick-time state a learned value model scores
// against.
type PredictionContext struct {
	PickNumber int
	Round      int
	TotalTeams int
	Roster     []player.Player
	Available  []player.Player
}

// ValuePredictor is the optional learned scoring signal. Recommendations
// work without one; the heuristic score stands alone.
type ValuePredictor interface {
	PredictPlayerValue(candidate player.Player, pickCtx PredictionContext) (float64, error)
}

// Recommendation is one ranked draft suggestion with its explanation.
type Recommendation struct {
	Player       player.Player         `json:"player"`
	Score        float64               `json:"score"`
	Reasoning    string                `json:"reasoning"`
	VORP         VORPResult            `json:"vorp"`
	ScarcityTier string                `json:"scarcity_tier"`
	Blocking     []BlockingOpportunity `json:"blocking_opportunities,omitempty"`
}

type RecommendService struct {
	draftRepo  draft.Repository
	playerRepo player.Repository
	vorp       *VORPCalculator
	predictor  ValuePredictor
	logger     *slog.Logger
}

// NewRecommendService builds the engine. predictor may be nil.
func NewRecommendService(
	draftRepo draft.Repository,
	playerRepo player.Repository,
	predictor ValuePredictor,
	logger *slog.Logger,
) *RecommendService {
	return &RecommendService{
		draftRepo:  draftRepo,
		playerRepo: playerRepo,
		vorp:       NewVORPCalculator(),
		predictor:  predictor,
		logger:     logger,
	}
}

// Recommend scores every available player for the user's next pick and
// returns the top N with reasons.
func (s *RecommendService) Recommend(ctx context.Context, draftID string, topN int) ([]Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendService.Recommend")
	defer span.End()

	if topN <= 0 {
		topN = 5
	}

	state, ok, err := s.draftRepo.Get(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: draft=%s", ErrDraftNotFound, draftID)
	}

	all, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	index := make(map[string]player.Player, len(all))
	for _, p := range all {
		index[p.ID] = p
	}

	drafted := make(map[string]bool, len(state.Picks))
	for _, id := range state.DraftedPlayerIDs() {
		drafted[id] = true
	}
	available := make([]player.Player, 0, len(all))
	for _, p := range all {
		if !drafted[p.ID] {
			available = append(available, p)
		}
	}
	if len(available) == 0 {
		return []Recommendation{}, nil
	}

	myTeam := make([]player.Player, 0, len(state.MyRoster()))
	for _, id := range state.MyRoster() {
		if p, ok := index[id]; ok {
			myTeam = append(myTeam, p)
		}
	}

	opponentNeeds := s.vorp.OpponentNeeds(state, index)

	recs := make([]Recommendation, 0, len(available))
	for _, candidate := range available {
		rec := s.scoreCandidate(candidate, myTeam, available, index, state, opponentNeeds)
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Player.ADPOrUnranked() < recs[j].Player.ADPOrUnranked()
	})
	if len(recs) > topN {
		recs = recs[:topN]
	}

	s.logger.DebugContext(ctx, "recommendations computed",
		slog.String("draft_id", draftID),
		slog.Int("available", len(available)),
		slog.Int("returned", len(recs)),
	)
	return recs, nil
}

func (s *RecommendService) scoreCandidate(
	candidate player.Player,
	myTeam []player.Player,
	available []player.Player,
	index map[string]player.Player,
	state *draft.State,
	opponentNeeds map[string]map[string]int,
) Recommendation {
	var reasons []string

	scarcityScore, scarcityReason := s.analyzeScarcity(candidate, state, available, index)
	if scarcityReason != "" {
		reasons = append(reasons, scarcityReason)
	}

	needScore, needReason := s.analyzeTeamNeeds(candidate, myTeam, state)
	if needReason != "" {
		reasons = append(reasons, needReason)
	}

	valueScore, valueReason := s.analyzeProjectedValue(candidate, available)
	if valueReason != "" {
		reasons = append(reasons, valueReason)
	}

	score := scarcityScore*scarcityWeight + needScore*needsWeight + valueScore*valueWeight

	if adj, reason := s.adpAdjustment(candidate, state); adj != 0 {
		score += adj
		reasons = append(reasons, reason)
	}

	blocking := s.vorp.FindBlockingOpportunities(candidate, state, available, opponentNeeds)
	if len(blocking) > 0 {
		score += blocking[0].Urgency * 20
		reasons = append(reasons, blocking[0].Impact)
	}

	if s.predictor != nil {
		mlValue, err := s.predictor.PredictPlayerValue(candidate, PredictionContext{
			PickNumber: state.NextPickNumber(),
			Round:      state.CurrentRound,
			TotalTeams: state.TotalTeams,
			Roster:     myTeam,
			Available:  available,
		})
		if err == nil {
			score += mlValue
			reasons = append(reasons, "Model likes this pick")
		}
	}

	reasoning := "Solid pick"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, " | ")
	}

	tier, _ := s.vorp.ScarcityTier(candidate.Position, available, state.CurrentRound)

	return Recommendation{
		Player:       candidate,
		Score:        score,
		Reasoning:    reasoning,
		VORP:         s.vorp.CalculateVORP(candidate, available),
		ScarcityTier: tier,
		Blocking:     blocking,
	}
}

// analyzeScarcity scores how dried up the candidate's position is, counting
// drafted players against the league's total slot demand.
func (s *RecommendService) analyzeScarcity(candidate player.Player, state *draft.State, available []player.Player, index map[string]player.Player) (float64, string) {
	if len(available) == 0 {
		return 0, ""
	}

	peers := positionPool(candidate.Position, available)
	ratio := float64(len(peers)) / float64(len(available))
	score := (1.0 - ratio) * 100

	checkPos := string(candidate.Position)
	slotsPerTeam := 1
	switch {
	case candidate.IsPitcher():
		checkPos = "P"
		slotsPerTeam = pitcherSlotsPerTeam
	case candidate.Position == player.PositionOutfield:
		slotsPerTeam = 4
	}
	leagueSlots := state.TotalTeams * slotsPerTeam

	draftedAtPos := 0
	for _, id := range state.DraftedPlayerIDs() {
		p, ok := index[id]
		if !ok {
			continue
		}
		if candidate.IsPitcher() {
			if p.IsPitcher() {
				draftedAtPos++
			}
		} else if p.Position == candidate.Position {
			draftedAtPos++
		}
	}

	reason := fmt.Sprintf("Moderate %s availability", candidate.Position)
	switch {
	case ratio < 0.1:
		reason = fmt.Sprintf("Very scarce %s position", candidate.Position)
	case ratio < 0.2:
		reason = fmt.Sprintf("Scarce %s position", candidate.Position)
	}

	// top-heavy positions dry up by tier, not by count
	switch candidate.Position {
	case player.PositionCatcher, player.PositionShortstop, player.PositionSecondBase, player.PositionThirdBase:
		elite := 0
		for _, p := range peers {
			if p.ADP != nil && *p.ADP < 100 {
				elite++
			}
		}
		switch {
		case elite <= 2:
			score += 30
			reason = fmt.Sprintf("Elite %s tier nearly gone (%d left)", candidate.Position, elite)
		case elite <= 5:
			score += 15
		}
	case player.PositionOutfield, player.PositionStarter, player.PositionReliever, player.PositionPitcher:
		// deep positions: scale by remaining supply vs league demand
		if len(peers) > 0 && float64(len(peers)) < float64(leagueSlots)*0.5 {
			score += 20
		}
	}

	if leagueSlots > 0 && float64(draftedAtPos) > 0.8*float64(leagueSlots) {
		score *= 0.5
		reason = fmt.Sprintf("%s mostly drafted already", checkPos)
	}

	return score, reason
}

// analyzeTeamNeeds scores how well the candidate fits the evaluating team's
// open slots and the 11/9 hitter-pitcher balance.
func (s *RecommendService) analyzeTeamNeeds(candidate player.Player, myTeam []player.Player, state *draft.State) (float64, string) {
	var reasons []string
	score := 0.0

	counts := make(map[player.Position]int)
	hitters, pitchers := 0, 0
	for _, p := range myTeam {
		counts[p.Position]++
		if p.IsPitcher() {
			pitchers++
		} else {
			hitters++
		}
	}

	if candidate.IsPitcher() {
		switch {
		case pitchers < pitcherSlotsPerTeam:
			score += float64(pitcherSlotsPerTeam-pitchers) * 6
			reasons = append(reasons, fmt.Sprintf("Fills P need (%d/%d)", pitchers, pitcherSlotsPerTeam))
		case pitchers == pitcherSlotsPerTeam:
			score -= 10
			reasons = append(reasons, "Pitching depth pick")
		default:
			score -= 40
			reasons = append(reasons, "Pitching staff already over capacity")
		}
	} else {
		required := hitterRequirement(candidate.Position)
		have := counts[candidate.Position]
		switch {
		case have < required:
			score += float64(required-have) * 50
			reasons = append(reasons, fmt.Sprintf("Fills %s need (%d/%d)", candidate.Position, have, required))
		case have == required:
			score += 10
			reasons = append(reasons, fmt.Sprintf("Depth at %s (%d/%d)", candidate.Position, have, required))
		case have == required+1:
			score -= 10
			reasons = append(reasons, fmt.Sprintf("Mild surplus at %s", candidate.Position))
		default:
			score -= 40
			reasons = append(reasons, fmt.Sprintf("Redundant %s pick", candidate.Position))
		}

		// flexible slots the candidate could still occupy
		switch candidate.Position {
		case player.PositionSecondBase, player.PositionShortstop:
			if counts[player.PositionSecondBase]+counts[player.PositionShortstop] >= 2 {
				score += 35
				reasons = append(reasons, "Can fill MI slot")
			} else {
				score += 25
			}
		case player.PositionFirstBase, player.PositionThirdBase:
			if counts[player.PositionFirstBase]+counts[player.PositionThirdBase] >= 2 {
				score += 35
				reasons = append(reasons, "Can fill CI slot")
			} else {
				score += 25
			}
		}
		if hitters == 0 {
			score += 25
		}
	}

	// 11/9 balance urgency
	remainingPicks := state.RosterSize - len(myTeam)
	hittersNeeded := hitterSlotsPerTeam - hitters
	pitchersNeeded := pitcherSlotsPerTeam - pitchers
	if hittersNeeded < 0 {
		hittersNeeded = 0
	}
	if pitchersNeeded < 0 {
		pitchersNeeded = 0
	}
	if hittersNeeded+pitchersNeeded >= remainingPicks {
		if candidate.IsPitcher() && pitchersNeeded > 0 {
			score += 30
			reasons = append(reasons, "Pitching slots must be filled with remaining picks")
		}
		if !candidate.IsPitcher() && hittersNeeded > 0 {
			score += 30
			reasons = append(reasons, "Hitting slots must be filled with remaining picks")
		}
	}
	if pitchers == 0 && state.NextPickNumber() >= 40 && candidate.IsPitcher() {
		score += 60
		reasons = append(reasons, "Critical: no pitchers drafted yet")
	}

	if len(reasons) == 0 {
		return score, "Depth pick"
	}
	return score, strings.Join(reasons, " | ")
}

// hitterRequirement is the dedicated-slot demand for a hitting position,
// before the flexible MI/CI/U slots.
func hitterRequirement(pos player.Position) int {
	if pos == player.PositionOutfield {
		return 4
	}
	if pos == player.PositionDH {
		return 1 // utility only
	}
	return 1
}

// analyzeProjectedValue scores the raw projection with the league's category
// weights and positions it against available peers.
func (s *RecommendService) analyzeProjectedValue(candidate player.Player, available []player.Player) (float64, string) {
	value := projectedValue(candidate)

	peers := positionPool(candidate.Position, available)
	if len(peers) == 0 {
		return value, "Good projected value"
	}

	below := 0
	for _, peer := range peers {
		if projectedValue(peer) < value {
			below++
		}
	}
	percentile := float64(below) / float64(len(peers)) * 100

	switch {
	case percentile >= 85:
		return value, fmt.Sprintf("Elite %s (top %.0f%%)", candidate.Position, 100-percentile)
	case percentile >= 70:
		return value, fmt.Sprintf("Top tier %s (top %.0f%%)", candidate.Position, 100-percentile)
	case percentile >= 50:
		return value, fmt.Sprintf("Solid %s value", candidate.Position)
	default:
		return value, fmt.Sprintf("Average %s value", candidate.Position)
	}
}

// adpAdjustment penalizes early reaches and rewards value picks relative to
// consensus draft position.
func (s *RecommendService) adpAdjustment(candidate player.Player, state *draft.State) (float64, string) {
	if candidate.ADP == nil {
		return 0, ""
	}
	deviation := *candidate.ADP - float64(state.NextPickNumber())
	switch {
	case deviation <= -20:
		return 15, fmt.Sprintf("Value pick: ADP %.0f still on the board", *candidate.ADP)
	case deviation < 0:
		adj := -deviation * 0.5
		return adj, "Falling past ADP"
	case deviation > 30 && state.CurrentRound <= 5:
		return -20, fmt.Sprintf("Early reach: ADP %.0f is well beyond this pick", *candidate.ADP)
	case deviation > 30:
		return -10, fmt.Sprintf("Reach: ADP %.0f is well beyond this pick", *candidate.ADP)
	default:
		return 0, ""
	}
}

// projectedValue is the fixed linear scoring of a projection over the
// league's ten categories.
func projectedValue(p player.Player) float64 {
	value := 0.0
	pr := p.Projection

	if p.IsHitter() {
		if pr.HomeRuns != nil {
			value += *pr.HomeRuns * 2.5
		}
		if pr.OBP != nil {
			value += (*pr.OBP - 0.300) * 500
		}
		if pr.Runs != nil {
			value += *pr.Runs * 0.6
		}
		if pr.RBI != nil {
			value += *pr.RBI * 0.6
		}
		if pr.StolenBases != nil {
			value += *pr.StolenBases * 3.5
		}
		return value
	}

	if pr.Wins != nil {
		value += *pr.Wins * 2.0
	}
	if pr.QualityStarts != nil {
		value += *pr.QualityStarts * 2.0
	}
	if pr.Strikeouts != nil {
		value += *pr.Strikeouts * 0.25
	}
	if pr.Saves != nil {
		value += *pr.Saves * 3.0
	}
	if pr.Holds != nil {
		value += *pr.Holds * 1.5
	}
	if pr.ERA != nil {
		if v := (5.0 - *pr.ERA) * 15; v > 0 {
			value += v
		}
	}
	if pr.WHIP != nil {
		if v := (1.5 - *pr.WHIP) * 30; v > 0 {
			value += v
		}
	}
	return value
}
