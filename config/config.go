package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDriver  string
	DBSource  string
	JWTSecret []byte
	TokenTTL  time.Duration
	Seed      bool
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment (and a .env file if one
// exists). The JWT secret has no in-source fallback: it must be injected.
func Load() *Config {
	_ = godotenv.Load() // load .env if it exists

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return &Config{
		Port:      getenv("PORT", "8080"),
		DBDriver:  getenv("DB_DRIVER", "sqlite"),
		DBSource:  getenv("DB_SOURCE", "food_ordering.db"),
		JWTSecret: []byte(secret),
		TokenTTL:  7 * 24 * time.Hour,
		Seed:      os.Getenv("SEED") == "true",
	}
}
