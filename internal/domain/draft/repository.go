package draft

import "context"

// Repository describes draft persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, draftID string) (*State, bool, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, draftID string) error
}
