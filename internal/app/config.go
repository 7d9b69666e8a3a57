package app

import (
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/envutil"
	"github.com/stoiccoach/stoic-coach-backend/internal/platform/logger"
)

type Config struct {
	Port         string
	JWTSecretKey string
	RedisAddr    string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:         envutil.Str("PORT", "8080"),
		JWTSecretKey: envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		RedisAddr:    envutil.Str("REDIS_ADDR", ""),
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set; using the development default")
	}
	return cfg
}
