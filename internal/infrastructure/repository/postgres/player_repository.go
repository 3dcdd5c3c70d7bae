package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	qb "github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"position",
	"mlb_team",
	"age",
	"adp",
	"projection::text AS projection",
	"risk::text AS risk",
	"statcast::text AS statcast",
	"park_factors::text AS park_factors",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("adp NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		OrderBy("adp NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows)
}

// ReplaceAll swaps the whole player pool in one transaction, so readers never
// observe a half-loaded pool.
func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}

	for _, p := range players {
		row, err := playerToRow(p)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("players", row, "")
		if err != nil {
			return fmt.Errorf("build insert player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace players tx: %w", err)
	}
	return nil
}

func playersFromRows(rows []playerTableModel) ([]player.Player, error) {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
