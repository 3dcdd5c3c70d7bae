package roster

import "context"

// Repository describes per-team roster persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, draftID, teamName string) (*Grid, error)
	Save(ctx context.Context, draftID string, grid *Grid) error
	SavePick(ctx context.Context, draftID, teamName string, entry Entry) error
	DeletePick(ctx context.Context, draftID, teamName string, pickNumber int) error
	DeleteAll(ctx context.Context, draftID string) error
}
