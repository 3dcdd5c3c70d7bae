package draft

import (
	"fmt"
	"time"
)

// Pick is one append-only entry in a draft's pick log.
type Pick struct {
	PickNumber int       `json:"pick_number"`
	Round      int       `json:"round"`
	TeamName   string    `json:"team_name"`
	PlayerID   string    `json:"player_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// State tracks an in-progress draft: league configuration, the ordered pick
// log, and the derived team -> player-ids map. CurrentPick counts within the
// current round (1..TotalTeams).
type State struct {
	DraftID      string              `json:"draft_id"`
	LeagueName   string              `json:"league_name"`
	Teams        []string            `json:"teams"`
	TotalTeams   int                 `json:"total_teams"`
	RosterSize   int                 `json:"roster_size"`
	MyTeamName   string              `json:"my_team_name"`
	CurrentPick  int                 `json:"current_pick"`
	CurrentRound int                 `json:"current_round"`
	Picks        []Pick              `json:"picks"`
	TeamRosters  map[string][]string `json:"team_rosters"`
}

func NewState(draftID, leagueName string, teams []string, rosterSize int, myTeamName string) *State {
	return &State{
		DraftID:      draftID,
		LeagueName:   leagueName,
		Teams:        append([]string(nil), teams...),
		TotalTeams:   len(teams),
		RosterSize:   rosterSize,
		MyTeamName:   myTeamName,
		CurrentPick:  1,
		CurrentRound: 1,
		TeamRosters:  make(map[string][]string),
	}
}

// Order rebuilds the pick order from the stored team list.
func (s *State) Order() Order {
	return NewOrder(s.Teams)
}

func (s *State) Validate() error {
	if s.DraftID == "" {
		return fmt.Errorf("draft id is required")
	}
	if s.TotalTeams <= 0 {
		return fmt.Errorf("total teams must be greater than zero")
	}
	if s.RosterSize <= 0 {
		return fmt.Errorf("roster size must be greater than zero")
	}
	if s.MyTeamName == "" {
		return fmt.Errorf("my team name is required")
	}
	return nil
}

// AddPick appends a pick and advances the pick/round counters.
func (s *State) AddPick(p Pick) {
	s.Picks = append(s.Picks, p)
	s.TeamRosters[p.TeamName] = append(s.TeamRosters[p.TeamName], p.PlayerID)

	s.CurrentPick++
	if s.CurrentPick > s.TotalTeams {
		s.CurrentRound++
		s.CurrentPick = 1
	}
}

// RemovePick deletes the pick with the given overall pick number and rewinds
// the pick/round counters to the state immediately preceding that pick.
// It returns the removed pick, or false when no pick matches.
func (s *State) RemovePick(pickNumber int) (Pick, bool) {
	idx := -1
	for i, p := range s.Picks {
		if p.PickNumber == pickNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Pick{}, false
	}

	removed := s.Picks[idx]
	s.Picks = append(s.Picks[:idx], s.Picks[idx+1:]...)

	roster := s.TeamRosters[removed.TeamName]
	for i, id := range roster {
		if id == removed.PlayerID {
			s.TeamRosters[removed.TeamName] = append(roster[:i], roster[i+1:]...)
			break
		}
	}

	if len(s.Picks) == 0 {
		s.CurrentPick = 1
		s.CurrentRound = 1
		return removed, true
	}

	last := s.Picks[len(s.Picks)-1]
	s.CurrentPick = ((last.PickNumber) % s.TotalTeams) + 1
	s.CurrentRound = last.Round
	if s.CurrentPick == 1 {
		s.CurrentRound++
	}
	return removed, true
}

// NextPickNumber is the overall number the next pick will receive.
func (s *State) NextPickNumber() int {
	return len(s.Picks) + 1
}

// DraftedPlayerIDs returns every drafted player id in pick order.
func (s *State) DraftedPlayerIDs() []string {
	out := make([]string, 0, len(s.Picks))
	for _, p := range s.Picks {
		out = append(out, p.PlayerID)
	}
	return out
}

// RosterFor returns the player ids drafted by a team, in pick order.
func (s *State) RosterFor(teamName string) []string {
	return append([]string(nil), s.TeamRosters[teamName]...)
}

// MyRoster returns the player ids on the user's own team.
func (s *State) MyRoster() []string {
	return s.RosterFor(s.MyTeamName)
}

// RostersFull reports whether every team has reached the roster size. Full
// completion additionally requires every required position slot to be
// filled; that check needs roster grids and lives with the draft service.
func (s *State) RostersFull() bool {
	if len(s.TeamRosters) < s.TotalTeams {
		return false
	}
	for _, ids := range s.TeamRosters {
		if len(ids) < s.RosterSize {
			return false
		}
	}
	return true
}

// Clone returns a deep copy safe to mutate independently.
func (s *State) Clone() *State {
	copied := *s
	copied.Teams = append([]string(nil), s.Teams...)
	copied.Picks = append([]Pick(nil), s.Picks...)
	copied.TeamRosters = make(map[string][]string, len(s.TeamRosters))
	for team, ids := range s.TeamRosters {
		copied.TeamRosters[team] = append([]string(nil), ids...)
	}
	return &copied
}
