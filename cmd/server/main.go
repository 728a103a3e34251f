package main

import (
	"net/http"
	"os"

	"github.com/KiptooAbel/snake-game-backend/internal/api"
	"github.com/KiptooAbel/snake-game-backend/internal/config"
	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/KiptooAbel/snake-game-backend/internal/handler"
	"github.com/KiptooAbel/snake-game-backend/internal/logger"
	"github.com/KiptooAbel/snake-game-backend/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Fuseau des classements calendaires, fixé une fois au démarrage
	handler.SetLeaderboardLocation(cfg.LeaderboardLocation)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
