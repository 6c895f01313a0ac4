package config

import (
	"os"
	"strings"
)

// Config holds the server's runtime settings, read once at startup.
type Config struct {
	Addr           string
	DBPath         string
	UploadDir      string
	JWTSecret      string
	AllowedOrigins []string
}

// FromEnv builds a Config from environment variables, falling back to
// development defaults for everything except the JWT secret.
func FromEnv() *Config {
	cfg := &Config{
		Addr:      getenv("LOOPTALK_ADDR", ":5000"),
		DBPath:    getenv("LOOPTALK_DB_PATH", "data/badger"),
		UploadDir: getenv("LOOPTALK_UPLOAD_DIR", "uploads"),
		JWTSecret: os.Getenv("JWT_SECRET_KEY"),
	}

	origins := getenv("LOOPTALK_ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
