package player

import "context"

// Repository describes player-pool persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ReplaceAll(ctx context.Context, players []Player) error
}
