package memory

import (
	"context"
	"sync"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{}
	r.replace(players)
	return r
}

func (r *PlayerRepository) replace(players []player.Player) {
	r.players = append([]player.Player(nil), players...)
	r.index = make(map[string]player.Player, len(players))
	for _, p := range players {
		r.index[p.ID] = p
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.replace(players)
	return nil
}
