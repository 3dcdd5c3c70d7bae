package roster

import (
	"errors"
	"fmt"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

var (
	ErrNoOpenSlot      = errors.New("no open roster slot for position")
	ErrDuplicatePlayer = errors.New("player already on roster")
)

// Slot names a roster position group. MI overflows from 2B/SS, CI from
// 1B/3B, U takes any hitter, and P takes any SP/RP mix.
type Slot string

const (
	SlotCatcher    Slot = "C"
	SlotFirstBase  Slot = "1B"
	SlotSecondBase Slot = "2B"
	SlotThirdBase  Slot = "3B"
	SlotShortstop  Slot = "SS"
	SlotMiddleInf  Slot = "MI"
	SlotCornerInf  Slot = "CI"
	SlotOutfield   Slot = "OF"
	SlotUtility    Slot = "U"
	SlotPitcher    Slot = "P"
	SlotBench      Slot = "BENCH"
)

// SlotCounts is the league's fixed requirement table. BENCH is the one
// optional overflow slot and does not count toward required-position fill.
var SlotCounts = map[Slot]int{
	SlotCatcher:    1,
	SlotFirstBase:  1,
	SlotSecondBase: 1,
	SlotThirdBase:  1,
	SlotShortstop:  1,
	SlotMiddleInf:  1,
	SlotCornerInf:  1,
	SlotOutfield:   4,
	SlotUtility:    1,
	SlotPitcher:    9,
	SlotBench:      1,
}

// fill order: dedicated slots before flexible ones, bench last.
var slotPriority = []Slot{
	SlotCatcher, SlotFirstBase, SlotSecondBase, SlotThirdBase, SlotShortstop,
	SlotOutfield, SlotPitcher, SlotMiddleInf, SlotCornerInf, SlotUtility,
	SlotBench,
}

// Entry is a drafted-player snapshot occupying one roster slot.
type Entry struct {
	PlayerID   string            `json:"player_id"`
	Name       string            `json:"name"`
	Position   player.Position   `json:"position"`
	MLBTeam    string            `json:"team"`
	PickNumber int               `json:"pick_number"`
	Round      int               `json:"round"`
	Projection player.Projection `json:"stats"`
}

// Grid is a team's position-keyed roster. Each slot array holds an entry or
// nil. Invariant: a player id appears in at most one slot.
type Grid struct {
	TeamName string            `json:"team_name"`
	Slots    map[Slot][]*Entry `json:"positions"`
}

func NewGrid(teamName string) *Grid {
	slots := make(map[Slot][]*Entry, len(SlotCounts))
	for slot, count := range SlotCounts {
		slots[slot] = make([]*Entry, count)
	}
	return &Grid{TeamName: teamName, Slots: slots}
}

// EligibleSlots returns the slots a position may occupy, in fill-priority
// order. Bench is always last.
func EligibleSlots(pos player.Position) []Slot {
	var eligible map[Slot]bool
	switch {
	case player.IsPitching(pos):
		eligible = map[Slot]bool{SlotPitcher: true}
	default:
		eligible = map[Slot]bool{SlotUtility: true}
		switch pos {
		case player.PositionCatcher:
			eligible[SlotCatcher] = true
		case player.PositionFirstBase:
			eligible[SlotFirstBase] = true
			eligible[SlotCornerInf] = true
		case player.PositionSecondBase:
			eligible[SlotSecondBase] = true
			eligible[SlotMiddleInf] = true
		case player.PositionThirdBase:
			eligible[SlotThirdBase] = true
			eligible[SlotCornerInf] = true
		case player.PositionShortstop:
			eligible[SlotShortstop] = true
			eligible[SlotMiddleInf] = true
		case player.PositionOutfield:
			eligible[SlotOutfield] = true
		}
	}
	eligible[SlotBench] = true

	out := make([]Slot, 0, len(eligible))
	for _, slot := range slotPriority {
		if eligible[slot] {
			out = append(out, slot)
		}
	}
	return out
}

// HasAvailableSlotFor reports whether the grid can still take a player at
// the given position, counting the bench slot.
func (g *Grid) HasAvailableSlotFor(pos player.Position) bool {
	for _, slot := range EligibleSlots(pos) {
		for _, entry := range g.Slots[slot] {
			if entry == nil {
				return true
			}
		}
	}
	return false
}

// Contains reports whether a player already occupies any slot.
func (g *Grid) Contains(playerID string) bool {
	for _, entries := range g.Slots {
		for _, entry := range entries {
			if entry != nil && entry.PlayerID == playerID {
				return true
			}
		}
	}
	return false
}

// Assign places an entry in the first open eligible slot.
func (g *Grid) Assign(entry Entry) (Slot, error) {
	if g.Contains(entry.PlayerID) {
		return "", fmt.Errorf("%w: %s", ErrDuplicatePlayer, entry.PlayerID)
	}
	for _, slot := range EligibleSlots(entry.Position) {
		for i, existing := range g.Slots[slot] {
			if existing == nil {
				e := entry
				g.Slots[slot][i] = &e
				return slot, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoOpenSlot, entry.Position)
}

// RemoveByPick clears the slot holding the entry drafted at pickNumber.
func (g *Grid) RemoveByPick(pickNumber int) bool {
	for slot, entries := range g.Slots {
		for i, entry := range entries {
			if entry != nil && entry.PickNumber == pickNumber {
				g.Slots[slot][i] = nil
				return true
			}
		}
	}
	return false
}

// Entries returns every filled slot's entry in pick order.
func (g *Grid) Entries() []Entry {
	var out []Entry
	for _, slot := range slotPriority {
		for _, entry := range g.Slots[slot] {
			if entry != nil {
				out = append(out, *entry)
			}
		}
	}
	return out
}

// Count returns how many slots are filled, including the bench.
func (g *Grid) Count() int {
	n := 0
	for _, entries := range g.Slots {
		for _, entry := range entries {
			if entry != nil {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy safe to mutate independently.
func (g *Grid) Clone() *Grid {
	copied := NewGrid(g.TeamName)
	for slot, entries := range g.Slots {
		for i, entry := range entries {
			if entry != nil {
				e := *entry
				copied.Slots[slot][i] = &e
			}
		}
	}
	return copied
}

// RequiredFilled reports whether every non-bench slot is occupied.
func (g *Grid) RequiredFilled() bool {
	for slot, entries := range g.Slots {
		if slot == SlotBench {
			continue
		}
		for _, entry := range entries {
			if entry == nil {
				return false
			}
		}
	}
	return true
}
