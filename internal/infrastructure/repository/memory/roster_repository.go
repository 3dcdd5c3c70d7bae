package memory

import (
	"context"
	"sync"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	grids map[string]map[string]*roster.Grid
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		grids: make(map[string]map[string]*roster.Grid),
	}
}

// Get returns the team's grid, or a fresh empty grid when none is stored.
func (r *RosterRepository) Get(_ context.Context, draftID, teamName string) (*roster.Grid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	grid, ok := r.grids[draftID][teamName]
	if !ok {
		return roster.NewGrid(teamName), nil
	}
	return grid.Clone(), nil
}

func (r *RosterRepository) Save(_ context.Context, draftID string, grid *roster.Grid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.grids[draftID]; !ok {
		r.grids[draftID] = make(map[string]*roster.Grid)
	}
	r.grids[draftID][grid.TeamName] = grid.Clone()
	return nil
}

func (r *RosterRepository) SavePick(_ context.Context, draftID, teamName string, entry roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.grids[draftID]; !ok {
		r.grids[draftID] = make(map[string]*roster.Grid)
	}
	grid, ok := r.grids[draftID][teamName]
	if !ok {
		grid = roster.NewGrid(teamName)
		r.grids[draftID][teamName] = grid
	}
	_, err := grid.Assign(entry)
	return err
}

func (r *RosterRepository) DeletePick(_ context.Context, draftID, teamName string, pickNumber int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if grid, ok := r.grids[draftID][teamName]; ok {
		grid.RemoveByPick(pickNumber)
	}
	return nil
}

func (r *RosterRepository) DeleteAll(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.grids, draftID)
	return nil
}
