package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	basecache "github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/cache"
)

// PlayerRepository caches player-pool reads in front of a slower store. The
// pool only changes on a full reload, so a reload invalidates every key.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	key := "player:ids:" + playerIDsCacheKey(playerIDs)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	if err := r.next.ReplaceAll(ctx, players); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player:")
	return nil
}

func playerIDsCacheKey(playerIDs []string) string {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
