package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/openrouter"
)

type Clients struct {
	Redis *redis.Client
	AI    openrouter.Client
}

// wireClients builds the external clients. Redis is optional (it only
// backs the model-availability cache); a missing OpenRouter key leaves
// the AI client nil and the HTTP layer degrades per route.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	ai, err := openrouter.NewClient(log, rdb)
	if err != nil {
		log.Warn("Could not init OpenRouter client", "error", err.Error())
		ai = nil
	}

	return Clients{Redis: rdb, AI: ai}
}
