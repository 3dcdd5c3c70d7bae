package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
	qb "github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/querybuilder"
)

// DraftRepository stores each draft as one JSONB document keyed by draft id.
// The pick log is append-mostly and always read whole, so a document beats a
// normalized pick table here.
type DraftRepository struct {
	db *sqlx.DB
}

type draftTableModel struct {
	DraftID    string `db:"draft_id"`
	LeagueName string `db:"league_name"`
	MyTeamName string `db:"my_team_name"`
	State      string `db:"state"`
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) Get(ctx context.Context, draftID string) (*draft.State, bool, error) {
	query, args, err := qb.Select("draft_id", "league_name", "my_team_name", "state::text AS state").
		From("drafts").
		Where(qb.Eq("draft_id", draftID)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get draft: %w", err)
	}

	var state draft.State
	if err := sonic.UnmarshalString(row.State, &state); err != nil {
		return nil, false, fmt.Errorf("decode draft state %s: %w", draftID, err)
	}
	return &state, true, nil
}

func (r *DraftRepository) Save(ctx context.Context, state *draft.State) error {
	encoded, err := sonic.MarshalString(state)
	if err != nil {
		return fmt.Errorf("encode draft state %s: %w", state.DraftID, err)
	}

	row := draftTableModel{
		DraftID:    state.DraftID,
		LeagueName: state.LeagueName,
		MyTeamName: state.MyTeamName,
		State:      encoded,
	}
	query, args, err := qb.InsertModel("drafts", row, `ON CONFLICT (draft_id)
DO UPDATE SET
    league_name = EXCLUDED.league_name,
    my_team_name = EXCLUDED.my_team_name,
    state = EXCLUDED.state,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert draft query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert draft %s: %w", state.DraftID, err)
	}
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, draftID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE draft_id = $1`, draftID); err != nil {
		return fmt.Errorf("delete draft %s: %w", draftID, err)
	}
	return nil
}
