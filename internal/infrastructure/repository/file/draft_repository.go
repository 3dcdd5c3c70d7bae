package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/draft"
)

// DraftRepository persists draft state as one JSON document per draft under
// the data directory, so a restarted process resumes mid-draft.
type DraftRepository struct {
	dir string
	mu  sync.Mutex
}

func NewDraftRepository(dir string) *DraftRepository {
	return &DraftRepository{dir: dir}
}

func (r *DraftRepository) path(draftID string) string {
	return filepath.Join(r.dir, fmt.Sprintf("draft_%s.json", safeName(draftID)))
}

func (r *DraftRepository) Get(_ context.Context, draftID string) (*draft.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var state draft.State
	ok, err := readJSON(r.path(draftID), &state)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return &state, true, nil
}

func (r *DraftRepository) Save(_ context.Context, state *draft.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSON(r.path(state.DraftID), state)
}

func (r *DraftRepository) Delete(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(draftID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete draft file: %w", err)
	}
	return nil
}
