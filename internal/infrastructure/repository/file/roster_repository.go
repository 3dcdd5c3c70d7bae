package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roster"
)

// RosterRepository stores one roster grid per (draft, team) under
// <dir>/draft_<id>_rosters/<team>.json.
type RosterRepository struct {
	dir string
	mu  sync.Mutex
}

func NewRosterRepository(dir string) *RosterRepository {
	return &RosterRepository{dir: dir}
}

func (r *RosterRepository) rosterDir(draftID string) string {
	return filepath.Join(r.dir, fmt.Sprintf("draft_%s_rosters", safeName(draftID)))
}

func (r *RosterRepository) path(draftID, teamName string) string {
	return filepath.Join(r.rosterDir(draftID), safeName(draft.SanitizeTeamName(teamName))+".json")
}

func (r *RosterRepository) Get(_ context.Context, draftID, teamName string) (*roster.Grid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(draftID, teamName)
}

func (r *RosterRepository) Save(_ context.Context, draftID string, grid *roster.Grid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSON(r.path(draftID, grid.TeamName), grid)
}

func (r *RosterRepository) SavePick(_ context.Context, draftID, teamName string, entry roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	grid, err := r.load(draftID, teamName)
	if err != nil {
		return err
	}
	if _, err := grid.Assign(entry); err != nil {
		return fmt.Errorf("assign pick to roster: %w", err)
	}
	return writeJSON(r.path(draftID, teamName), grid)
}

func (r *RosterRepository) DeletePick(_ context.Context, draftID, teamName string, pickNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	grid, err := r.load(draftID, teamName)
	if err != nil {
		return err
	}
	if !grid.RemoveByPick(pickNumber) {
		return nil
	}
	return writeJSON(r.path(draftID, teamName), grid)
}

func (r *RosterRepository) DeleteAll(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.RemoveAll(r.rosterDir(draftID)); err != nil {
		return fmt.Errorf("delete roster dir: %w", err)
	}
	return nil
}

func (r *RosterRepository) load(draftID, teamName string) (*roster.Grid, error) {
	var grid roster.Grid
	ok, err := readJSON(r.path(draftID, teamName), &grid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.NewGrid(teamName), nil
	}
	return &grid, nil
}
