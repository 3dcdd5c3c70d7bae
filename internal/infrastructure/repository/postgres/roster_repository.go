package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roster"
	qb "github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/querybuilder"
)

// RosterRepository stores one JSONB grid per (draft, team) pair.
type RosterRepository struct {
	db *sqlx.DB
}

type rosterTableModel struct {
	DraftID  string `db:"draft_id"`
	TeamName string `db:"team_name"`
	Grid     string `db:"grid"`
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Get(ctx context.Context, draftID, teamName string) (*roster.Grid, error) {
	grid, _, err := r.get(ctx, draftID, teamName)
	if err != nil {
		return nil, err
	}
	return grid, nil
}

func (r *RosterRepository) Save(ctx context.Context, draftID string, grid *roster.Grid) error {
	return r.save(ctx, draftID, grid)
}

func (r *RosterRepository) SavePick(ctx context.Context, draftID, teamName string, entry roster.Entry) error {
	grid, _, err := r.get(ctx, draftID, teamName)
	if err != nil {
		return err
	}
	if _, err := grid.Assign(entry); err != nil {
		return fmt.Errorf("assign pick to roster: %w", err)
	}
	return r.save(ctx, draftID, grid)
}

func (r *RosterRepository) DeletePick(ctx context.Context, draftID, teamName string, pickNumber int) error {
	grid, found, err := r.get(ctx, draftID, teamName)
	if err != nil {
		return err
	}
	if !found || !grid.RemoveByPick(pickNumber) {
		return nil
	}
	return r.save(ctx, draftID, grid)
}

func (r *RosterRepository) DeleteAll(ctx context.Context, draftID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM draft_rosters WHERE draft_id = $1`, draftID); err != nil {
		return fmt.Errorf("delete rosters for draft %s: %w", draftID, err)
	}
	return nil
}

func (r *RosterRepository) get(ctx context.Context, draftID, teamName string) (*roster.Grid, bool, error) {
	query, args, err := qb.Select("draft_id", "team_name", "grid::text AS grid").
		From("draft_rosters").
		Where(
			qb.Eq("draft_id", draftID),
			qb.Eq("team_name", teamName),
		).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get roster query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.NewGrid(teamName), false, nil
		}
		return nil, false, fmt.Errorf("get roster: %w", err)
	}

	var grid roster.Grid
	if err := sonic.UnmarshalString(row.Grid, &grid); err != nil {
		return nil, false, fmt.Errorf("decode roster grid for %s/%s: %w", draftID, teamName, err)
	}
	return &grid, true, nil
}

func (r *RosterRepository) save(ctx context.Context, draftID string, grid *roster.Grid) error {
	encoded, err := sonic.MarshalString(grid)
	if err != nil {
		return fmt.Errorf("encode roster grid for %s/%s: %w", draftID, grid.TeamName, err)
	}

	row := rosterTableModel{DraftID: draftID, TeamName: grid.TeamName, Grid: encoded}
	query, args, err := qb.InsertModel("draft_rosters", row, `ON CONFLICT (draft_id, team_name)
DO UPDATE SET
    grid = EXCLUDED.grid,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert roster query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roster %s/%s: %w", draftID, grid.TeamName, err)
	}
	return nil
}
