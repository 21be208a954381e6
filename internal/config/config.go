package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Match    MatchConfig
	Preview  PreviewConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type MatchConfig struct {
	SeedSize      int
	PrefetchTopic string
}

type PreviewConfig struct {
	Provider            string // "itunes" or "spotify"
	ItunesBaseURL       string
	SpotifyClientID     string
	SpotifyClientSecret string
	TimeoutSeconds      int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Match: MatchConfig{
			SeedSize:      getEnvAsInt("MATCH_SEED_SIZE", 20),
			PrefetchTopic: getEnv("PREFETCH_PREVIEW_TOPIC_NAME", "PREFETCH_PREVIEW"),
		},
		Preview: PreviewConfig{
			Provider:            getEnv("PREVIEW_PROVIDER", "itunes"),
			ItunesBaseURL:       getEnv("ITUNES_BASE_URL", "https://itunes.apple.com"),
			SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
			SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
			TimeoutSeconds:      getEnvAsInt("PREVIEW_TIMEOUT_SECONDS", 4),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
