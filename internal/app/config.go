package app

import (
	"time"

	"github.com/yungbote/storefront-backend/internal/pkg/envutil"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey string
	TokenTTL     time.Duration

	ProductsPerPage int

	MaxLoginAttempts int
	LockoutWindow    time.Duration

	RedisAddr string

	SeedProducts bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tokenTTLSeconds := envutil.GetEnvAsInt("TOKEN_TTL", 86400, log)
	productsPerPage := envutil.GetEnvAsInt("PRODUCTS_PER_PAGE", 6, log)
	maxLoginAttempts := envutil.GetEnvAsInt("MAX_LOGIN_ATTEMPTS", 5, log)
	lockoutWindowSeconds := envutil.GetEnvAsInt("LOGIN_LOCKOUT_WINDOW", 1800, log)
	redisAddr := envutil.GetEnv("REDIS_ADDR", "", log)
	seedProducts := envutil.GetEnv("SEED_PRODUCTS", "true", log)

	return Config{
		JWTSecretKey:     jwtSecretKey,
		TokenTTL:         time.Duration(tokenTTLSeconds) * time.Second,
		ProductsPerPage:  productsPerPage,
		MaxLoginAttempts: maxLoginAttempts,
		LockoutWindow:    time.Duration(lockoutWindowSeconds) * time.Second,
		RedisAddr:        redisAddr,
		SeedProducts:     seedProducts == "true" || seedProducts == "1",
	}
}
