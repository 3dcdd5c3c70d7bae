package postgres

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

// playerTableModel mirrors the players table. Projection, risk, statcast and
// park factor stat lines are stored as JSONB documents alongside the indexed
// scalar columns.
type playerTableModel struct {
	ID          string   `db:"id"`
	Name        string   `db:"name"`
	Position    string   `db:"position"`
	MLBTeam     string   `db:"mlb_team"`
	Age         *int     `db:"age"`
	ADP         *float64 `db:"adp"`
	Projection  string   `db:"projection"`
	Risk        string   `db:"risk"`
	Statcast    string   `db:"statcast"`
	ParkFactors string   `db:"park_factors"`
}

func playerToRow(p player.Player) (playerTableModel, error) {
	projection, err := sonic.MarshalString(p.Projection)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode projection for %s: %w", p.ID, err)
	}
	risk, err := sonic.MarshalString(p.Risk)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode risk for %s: %w", p.ID, err)
	}
	statcast, err := sonic.MarshalString(p.Statcast)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode statcast for %s: %w", p.ID, err)
	}
	park, err := sonic.MarshalString(p.Park)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode park factors for %s: %w", p.ID, err)
	}

	return playerTableModel{
		ID:          p.ID,
		Name:        p.Name,
		Position:    string(p.Position),
		MLBTeam:     p.MLBTeam,
		Age:         p.Age,
		ADP:         p.ADP,
		Projection:  projection,
		Risk:        risk,
		Statcast:    statcast,
		ParkFactors: park,
	}, nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	p := player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		MLBTeam:  row.MLBTeam,
		Age:      row.Age,
		ADP:      row.ADP,
	}
	if err := sonic.UnmarshalString(row.Projection, &p.Projection); err != nil {
		return player.Player{}, fmt.Errorf("decode projection for %s: %w", row.ID, err)
	}
	if err := sonic.UnmarshalString(row.Risk, &p.Risk); err != nil {
		return player.Player{}, fmt.Errorf("decode risk for %s: %w", row.ID, err)
	}
	if err := sonic.UnmarshalString(row.Statcast, &p.Statcast); err != nil {
		return player.Player{}, fmt.Errorf("decode statcast for %s: %w", row.ID, err)
	}
	if err := sonic.UnmarshalString(row.ParkFactors, &p.Park); err != nil {
		return player.Player{}, fmt.Errorf("decode park factors for %s: %w", row.ID, err)
	}
	return p, nil
}
