package draft

import "strings"

// Snake behavior: the first five rounds run in the league's fixed order, then
// the order reverses on round 6 and flips back every other round after that.
const fixedRounds = 5

// Order maps overall pick numbers to drafting teams for a hybrid
// fixed/snake draft.
type Order struct {
	teams []string
}

func NewOrder(teams []string) Order {
	return Order{teams: append([]string(nil), teams...)}
}

func (o Order) Teams() []string {
	return append([]string(nil), o.teams...)
}

func (o Order) TotalTeams() int {
	return len(o.teams)
}

// TeamForPick returns the team on the clock for a 1-indexed overall pick
// number. Rounds 1-5 use the fixed order; from round 6 the order reverses
// every other round (6, 8, 10, ... reversed; 7, 9, ... fixed).
func (o Order) TeamForPick(pickNumber int) string {
	n := len(o.teams)
	if n == 0 || pickNumber < 1 {
		return ""
	}

	round := ((pickNumber - 1) / n) + 1
	pickInRound := ((pickNumber - 1) % n) + 1

	if o.reversed(round) {
		return o.teams[n-pickInRound]
	}
	return o.teams[pickInRound-1]
}

// RoundOrder returns the team order for one round.
func (o Order) RoundOrder(round int) []string {
	out := o.Teams()
	if o.reversed(round) {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (o Order) reversed(round int) bool {
	if round <= fixedRounds {
		return false
	}
	return (round-fixedRounds)%2 == 1
}

// Index returns a team's 0-based slot in the fixed order, or -1.
func (o Order) Index(teamName string) int {
	for i, t := range o.teams {
		if t == teamName {
			return i
		}
	}
	return -1
}

// SanitizeTeamName converts a team name to a filesystem-safe form.
func SanitizeTeamName(teamName string) string {
	replacer := strings.NewReplacer(" ", "_", "'", "", ".", "")
	return replacer.Replace(teamName)
}
