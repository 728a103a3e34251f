package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/KiptooAbel/snake-game-backend/internal/logger"
)

// Config regroupe toute la configuration du serveur
type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Fuseau de référence des classements calendaires. Explicite pour que
	// "aujourd'hui" ne dépende pas de la machine qui héberge le serveur.
	LeaderboardLocation *time.Location
}

// LoadConfig charge la configuration depuis l'environnement (.env en dev)
func LoadConfig() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			logger.Warning("no .env file loaded (fine in production): %v", err)
		}
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "snake_game"),
	}

	tz := getEnv("LEADERBOARD_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_TIMEZONE %q: %w", tz, err)
	}
	cfg.LeaderboardLocation = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
