package app

import (
	redisclient "github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type Clients struct {
	Attempts redisclient.AttemptStore
}

// wireClients prefers redis for the login attempt counter and falls back to
// the in-process store when REDIS_ADDR is not configured.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, using in-memory login attempt store")
		return Clients{Attempts: services.NewMemoryAttemptStore()}
	}

	attempts, err := redisclient.NewAttemptStore(log)
	if err != nil {
		log.Warn("redis attempt store unavailable, using in-memory fallback", "error", err)
		return Clients{Attempts: services.NewMemoryAttemptStore()}
	}
	return Clients{Attempts: attempts}
}
