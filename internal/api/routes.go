package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/KiptooAbel/snake-game-backend/internal/handler"
	"github.com/KiptooAbel/snake-game-backend/internal/middleware"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", handler.Refresh).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/profile", handler.Profile).Methods(http.MethodGet)

	// User
	authenticatedRoutes.HandleFunc("/user", handler.UpdateProfile).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/user/stats", handler.GetUserStats).Methods(http.MethodGet)

	// Scores
	authenticatedRoutes.HandleFunc("/scores", handler.GetScores).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/scores", handler.CreateScore).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/scores/best", handler.GetBestScores).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/scores/{id:[0-9]+}", handler.GetScore).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/scores/{id:[0-9]+}", handler.DeleteScore).Methods(http.MethodDelete)

	// Game data (gems, coeurs, niveaux débloqués, high score)
	authenticatedRoutes.HandleFunc("/game-data", handler.GetGameData).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/game-data/sync", handler.SyncGameData).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/game-data/field", handler.UpdateGameDataField).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/game-data/gems", handler.ModifyGems).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/game-data/hearts", handler.ModifyHearts).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/game-data/unlock-level", handler.UnlockLevel).Methods(http.MethodPost)

	// Leaderboard (public)
	r.HandleFunc("/leaderboard/global", handler.GetGlobalLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/{window:daily|weekly|monthly}", handler.GetWindowedLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/difficulty/{difficulty}", handler.GetLeaderboardByDifficulty).Methods(http.MethodGet)

	// High scores (public)
	r.HandleFunc("/high-scores", handler.GetHighScores).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.Error(w, http.StatusNotFound, "route not found")
	})

	return r
}
