package memory

import (
	"context"
	"sync"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
)

type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]*draft.State
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		drafts: make(map[string]*draft.State),
	}
}

func (r *DraftRepository) Get(_ context.Context, draftID string) (*draft.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.drafts[draftID]
	if !ok {
		return nil, false, nil
	}
	return state.Clone(), true, nil
}

func (r *DraftRepository) Save(_ context.Context, state *draft.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[state.DraftID] = state.Clone()
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, draftID)
	return nil
}
