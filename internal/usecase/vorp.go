package usecase

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// Replacement level is the average stat line of the deep-bench band at a
// position: hitters ranked 15-25 by ADP, pitchers 60-80 (one shared pitcher
// pool).
const (
	hitterReplacementStart  = 15
	hitterReplacementEnd    = 25
	pitcherReplacementStart = 60
	pitcherReplacementEnd   = 80
)

// VORPResult describes how far a player's projection sits above the
// replacement level at their position.
type VORPResult struct {
	PlayerID              string             `json:"player_id"`
	PlayerName            string             `json:"player_name"`
	Position              player.Position    `json:"position"`
	Score                 float64            `json:"vorp_score"`
	ReplacementLevel      map[string]float64 `json:"replacement_level"`
	CategoryContributions map[string]float64 `json:"category_contributions"`
	Tier                  string             `json:"tier"`
}

// BlockingOpportunity flags an opponent who structurally needs the position
// a candidate plays.
type BlockingOpportunity struct {
	OpponentTeam      string  `json:"opponent_team"`
	PositionNeeded    string  `json:"position_needed"`
	PositionsFilled   int     `json:"positions_filled"`
	PositionsRequired int     `json:"positions_required"`
	Urgency           float64 `json:"urgency"`
	Impact            string  `json:"impact"`
}

// slots each team must fill per basic position, used for opponent-need
// analysis. Flexible slots (MI/CI/U) are covered by the basic counts.
var basicPositionRequirements = []struct {
	Position string
	Count    int
}{
	{"C", 1}, {"1B", 1}, {"2B", 1}, {"3B", 1}, {"SS", 1}, {"OF", 4}, {"P", 9},
}

// VORPCalculator computes replacement levels, VORP scores, and opponent
// blocking analysis. Replacement levels are cached per (position, pool size)
// since the pool only shrinks between picks.
type VORPCalculator struct {
	mu    sync.Mutex
	cache map[string]map[string]float64
}

func NewVORPCalculator() *VORPCalculator {
	return &VORPCalculator{cache: make(map[string]map[string]float64)}
}

// ReplacementLevel averages the projections of the deep-bench ADP band at a
// position.
func (c *VORPCalculator) ReplacementLevel(pos player.Position, available []player.Player) map[string]float64 {
	key := fmt.Sprintf("%s|%d", pos, len(available))
	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	isPitcher := player.IsPitching(pos)
	peers := positionPool(pos, available)
	if len(peers) == 0 {
		return map[string]float64{}
	}
	sortByADP(peers)

	start, end := hitterReplacementStart, hitterReplacementEnd
	if isPitcher {
		start, end = pitcherReplacementStart, pitcherReplacementEnd
	}
	if end > len(peers) {
		end = len(peers)
	}
	var band []player.Player
	if start < end {
		band = peers[start:end]
	}
	if len(band) == 0 {
		if len(peers) >= 5 {
			band = peers[len(peers)-5:]
		} else {
			band = peers
		}
	}

	level := make(map[string]float64)
	avg := func(name string, get func(player.Projection) *float64) {
		sum, n := 0.0, 0
		for _, p := range band {
			if v := get(p.Projection); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			level[name] = sum / float64(n)
		} else {
			level[name] = 0
		}
	}

	if isPitcher {
		avg("W", func(pr player.Projection) *float64 { return pr.Wins })
		avg("QS", func(pr player.Projection) *float64 { return pr.QualityStarts })
		avg("K", func(pr player.Projection) *float64 { return pr.Strikeouts })
		avg("SV", func(pr player.Projection) *float64 { return pr.Saves })
		avg("HLD", func(pr player.Projection) *float64 { return pr.Holds })
		avg("ERA", func(pr player.Projection) *float64 { return pr.ERA })
		avg("WHIP", func(pr player.Projection) *float64 { return pr.WHIP })
	} else {
		avg("HR", func(pr player.Projection) *float64 { return pr.HomeRuns })
		avg("R", func(pr player.Projection) *float64 { return pr.Runs })
		avg("RBI", func(pr player.Projection) *float64 { return pr.RBI })
		avg("SB", func(pr player.Projection) *float64 { return pr.StolenBases })
		avg("OBP", func(pr player.Projection) *float64 { return pr.OBP })
	}

	c.mu.Lock()
	c.cache[key] = level
	c.mu.Unlock()
	return level
}

// CalculateVORP scores a player's projection against the replacement level.
func (c *VORPCalculator) CalculateVORP(p player.Player, available []player.Player) VORPResult {
	level := c.ReplacementLevel(p.Position, available)
	contributions := make(map[string]float64)
	total := 0.0

	add := func(name string, v *float64, weight float64) {
		if v == nil {
			return
		}
		diff := *v - level[name]
		contributions[name] = diff
		total += diff * weight
	}
	// lower is better, so the diff flips
	addInverted := func(name string, v *float64, weight float64) {
		if v == nil || level[name] == 0 {
			return
		}
		diff := level[name] - *v
		contributions[name] = diff
		total += diff * weight
	}

	if p.IsPitcher() {
		add("K", p.Projection.Strikeouts, 0.1)
		add("W", p.Projection.Wins, 2.0)
		add("QS", p.Projection.QualityStarts, 2.0)
		add("SV", p.Projection.Saves, 3.0)
		add("HLD", p.Projection.Holds, 1.5)
		addInverted("ERA", p.Projection.ERA, 15)
		addInverted("WHIP", p.Projection.WHIP, 30)
	} else {
		add("HR", p.Projection.HomeRuns, 2.5)
		add("R", p.Projection.Runs, 0.6)
		add("RBI", p.Projection.RBI, 0.6)
		add("SB", p.Projection.StolenBases, 3.5)
		if p.Projection.OBP != nil {
			base := level["OBP"]
			if base == 0 {
				base = 0.300
			}
			diff := *p.Projection.OBP - base
			contributions["OBP"] = diff
			total += diff * 500
		}
	}

	return VORPResult{
		PlayerID:              p.ID,
		PlayerName:            p.Name,
		Position:              p.Position,
		Score:                 total,
		ReplacementLevel:      level,
		CategoryContributions: contributions,
		Tier:                  vorpTier(total),
	}
}

func vorpTier(score float64) string {
	switch {
	case score >= 80:
		return "Elite"
	case score >= 50:
		return "Above Average"
	case score >= 20:
		return "Average"
	case score >= 0:
		return "Below Average"
	default:
		return "Replacement"
	}
}

// OpponentNeeds maps every opponent to the basic position slots it still has
// to fill.
func (c *VORPCalculator) OpponentNeeds(state *draft.State, index map[string]player.Player) map[string]map[string]int {
	needs := make(map[string]map[string]int, state.TotalTeams)
	for team, ids := range state.TeamRosters {
		if team == state.MyTeamName {
			continue
		}

		counts := make(map[string]int)
		for _, id := range ids {
			p, ok := index[id]
			if !ok {
				continue
			}
			if p.IsPitcher() {
				counts["P"]++
			} else {
				counts[string(p.Position)]++
			}
		}

		teamNeeds := make(map[string]int)
		for _, req := range basicPositionRequirements {
			if missing := req.Count - counts[req.Position]; missing > 0 {
				teamNeeds[req.Position] = missing
			}
		}
		needs[team] = teamNeeds
	}
	return needs
}

// FindBlockingOpportunities lists opponents a pick would block, most urgent
// first. Only top-20%-of-position candidates generate strong urgency.
func (c *VORPCalculator) FindBlockingOpportunities(
	p player.Player,
	state *draft.State,
	available []player.Player,
	opponentNeeds map[string]map[string]int,
) []BlockingOpportunity {
	peers := positionPool(p.Position, available)
	others := peers[:0:0]
	for _, peer := range peers {
		if peer.ID != p.ID {
			others = append(others, peer)
		}
	}
	sortByADP(others)

	rank := len(others)
	for i, peer := range others {
		if peer.ADPOrUnranked() > p.ADPOrUnranked() {
			rank = i
			break
		}
	}
	isTop := len(others) > 0 && float64(rank) < float64(len(others))*0.2

	checkPos := string(p.Position)
	required := 0
	if p.IsPitcher() {
		checkPos = "P"
	}
	for _, req := range basicPositionRequirements {
		if req.Position == checkPos {
			required = req.Count
		}
	}
	if required == 0 {
		return nil
	}

	var out []BlockingOpportunity
	for team, needs := range opponentNeeds {
		needed := needs[checkPos]
		if needed <= 0 {
			continue
		}

		var urgency float64
		if isTop {
			remainingTop := len(others)
			if remainingTop > 10 {
				remainingTop = 10
			}
			urgency = float64(needed)/float64(required) + (1.0 - float64(remainingTop)/10.0)
			if urgency > 1.0 {
				urgency = 1.0
			}
		} else {
			urgency = float64(needed) / float64(required) * 0.5
		}
		if urgency <= 0.3 {
			continue
		}

		impact := fmt.Sprintf("Blocks %s from getting a top %s", team, checkPos)
		if needed > 1 {
			impact += fmt.Sprintf(" (they need %d more)", needed)
		}
		out = append(out, BlockingOpportunity{
			OpponentTeam:      team,
			PositionNeeded:    checkPos,
			PositionsFilled:   required - needed,
			PositionsRequired: required,
			Urgency:           urgency,
			Impact:            impact,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Urgency != out[j].Urgency {
			return out[i].Urgency > out[j].Urgency
		}
		return out[i].OpponentTeam < out[j].OpponentTeam
	})
	return out
}

// ScarcityTier labels how dried up a position is, by remaining sub-ADP-50
// elite players and draft progress.
func (c *VORPCalculator) ScarcityTier(pos player.Position, available []player.Player, currentRound int) (string, int) {
	peers := positionPool(pos, available)

	elite := 0
	for _, p := range peers {
		if p.ADP != nil && *p.ADP < 50 {
			elite++
		}
	}

	const scarcityRound = 15
	switch {
	case elite == 0:
		return "Dried Up", elite
	case elite <= 3:
		return "Critical", elite
	case elite <= 6:
		return "Scarce", elite
	case currentRound >= scarcityRound-2:
		return "Thinning", elite
	default:
		return "Available", elite
	}
}

// positionPool returns the available players competing for the same slots:
// all pitchers for a pitching position, exact matches otherwise.
func positionPool(pos player.Position, available []player.Player) []player.Player {
	out := make([]player.Player, 0)
	for _, p := range available {
		if player.IsPitching(pos) {
			if p.IsPitcher() {
				out = append(out, p)
			}
		} else if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

func sortByADP(players []player.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ADPOrUnranked() < players[j].ADPOrUnranked()
	})
}
