package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the process configuration, read from the environment
// (optionally seeded from a .env file).
type Settings struct {
	ListenAddr    string
	PublicBaseURL string

	TMDBAPIKey  string
	TMDBBaseURL string

	CatalogPath string
	TokensPath  string

	TempLinkSecret string
	TempLinkTTL    time.Duration

	XtreamDomain   string
	XtreamUsername string
	XtreamPassword string

	LogPath string
}

// Load reads settings from the environment. A .env file in the working
// directory is honored when present.
func Load() *Settings {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded settings from .env")
	}

	return &Settings{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		TMDBAPIKey:     os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:    os.Getenv("TMDB_BASE_URL"),
		CatalogPath:    getEnv("CATALOG_PATH", "filmes.json"),
		TokensPath:     getEnv("API_TOKENS_PATH", "api_tokens.json"),
		TempLinkSecret: os.Getenv("TEMP_LINK_SECRET"),
		TempLinkTTL:    getEnvDuration("TEMP_LINK_TTL_SECONDS", 4*time.Hour),
		XtreamDomain:   os.Getenv("XTREAM_DOMAIN"),
		XtreamUsername: os.Getenv("XTREAM_USERNAME"),
		XtreamPassword: os.Getenv("XTREAM_PASSWORD"),
		LogPath:        os.Getenv("LOG_PATH"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		log.Printf("[config] invalid %s=%q, using default", key, value)
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
