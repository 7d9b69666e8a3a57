package openrouter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	modelCacheKey = "openrouter:models"
	modelCacheTTL = 5 * time.Minute
)

// modelCache keeps the model-availability list in redis for a short TTL so
// the fallback loop does not hit the live endpoint on every turn. With no
// redis client every lookup misses, which is fine: availability only narrows
// the candidate list.
type modelCache struct {
	rdb *redis.Client
}

func newModelCache(rdb *redis.Client) *modelCache {
	return &modelCache{rdb: rdb}
}

func (m *modelCache) get(ctx context.Context) ([]string, bool) {
	if m == nil || m.rdb == nil {
		return nil, false
	}
	raw, err := m.rdb.Get(ctx, modelCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil || len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

func (m *modelCache) put(ctx context.Context, ids []string) {
	if m == nil || m.rdb == nil || len(ids) == 0 {
		return
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	_ = m.rdb.Set(ctx, modelCacheKey, raw, modelCacheTTL).Err()
}
