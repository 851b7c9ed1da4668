package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	// MediaRoot is the directory holding the videos/ and thumbnails/ trees.
	MediaRoot string

	// FFmpegBin is the transcoder binary name or path. Empty means "ffmpeg"
	// resolved via PATH.
	FFmpegBin string

	ListenAddr string
}

// Load reads configuration from the environment. A .env file is loaded
// first if present (local development); real deployments set the
// variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MediaRoot:   getenvDefault("MEDIA_ROOT", "./media"),
		FFmpegBin:   getenvDefault("FFMPEG_BIN", "ffmpeg"),
		ListenAddr:  getenvDefault("LISTEN_ADDR", ":8080"),
		TokenTTL:    24 * time.Hour,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
