package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/KiptooAbel/snake-game-backend/internal/game"
	model "github.com/KiptooAbel/snake-game-backend/internal/models"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

// Horloge et fuseau des fenêtres calendaires. Le fuseau vient de la config
// au démarrage; nowFunc n'est remplacé que par les tests.
var (
	nowFunc        = time.Now
	leaderboardLoc = time.UTC
)

// SetLeaderboardLocation fixe le fuseau de référence des classements
func SetLeaderboardLocation(loc *time.Location) {
	if loc != nil {
		leaderboardLoc = loc
	}
}

// GetGlobalLeaderboard classement de tous les temps: une ligne par joueur,
// basé sur le best_score déjà agrégé, les joueurs à 0 sont exclus
func GetGlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(r.Context(), `
		SELECT username, best_score
		FROM users
		WHERE best_score > 0 AND deleted_at IS NULL
		ORDER BY best_score DESC, id ASC
		LIMIT $1
	`, game.LeaderboardLimit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	defer rows.Close()

	leaderboard := []model.LeaderboardRow{}
	for rows.Next() {
		var row model.LeaderboardRow
		if err := rows.Scan(&row.Username, &row.Score); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not read leaderboard rows", err)
			return
		}
		row.Rank = len(leaderboard) + 1
		leaderboard = append(leaderboard, row)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read leaderboard rows", err)
		return
	}

	utils.Success(w, leaderboard)
}

// windowStart début de la fenêtre courante, selon l'horloge et le fuseau
// injectés
func windowStart(window game.Window) time.Time {
	return game.WindowStart(window, nowFunc(), leaderboardLoc)
}

// GetWindowedLeaderboard classement sur fenêtre calendaire (daily, weekly,
// monthly): meilleur score de chaque joueur dans la fenêtre
func GetWindowedLeaderboard(w http.ResponseWriter, r *http.Request) {
	window, err := game.ParseWindow(mux.Vars(r)["window"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	start := windowStart(window)

	rows, err := database.DB.Query(r.Context(), `
		SELECT u.username, MAX(s.score) AS score
		FROM scores s
		LEFT JOIN users u ON s.user_id = u.id AND u.deleted_at IS NULL
		WHERE s.created_at >= $1
		GROUP BY s.user_id, u.username
		ORDER BY score DESC, s.user_id ASC
		LIMIT $2
	`, start, game.LeaderboardLimit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	defer rows.Close()

	leaderboard, err := collectRows(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read leaderboard rows", err)
		return
	}

	utils.Success(w, leaderboard)
}

// GetLeaderboardByDifficulty classement par difficulté, sans borne de temps
func GetLeaderboardByDifficulty(w http.ResponseWriter, r *http.Request) {
	difficulty := strings.ToLower(mux.Vars(r)["difficulty"])
	if !game.ValidDifficulty(difficulty) {
		utils.Error(w, http.StatusBadRequest, "invalid difficulty level")
		return
	}

	rows, err := database.DB.Query(r.Context(), `
		SELECT u.username, MAX(s.score) AS score
		FROM scores s
		LEFT JOIN users u ON s.user_id = u.id AND u.deleted_at IS NULL
		WHERE s.difficulty = $1
		GROUP BY s.user_id, u.username
		ORDER BY score DESC, s.user_id ASC
		LIMIT $2
	`, difficulty, game.LeaderboardLimit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query leaderboard", err)
		return
	}
	defer rows.Close()

	leaderboard, err := collectRows(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read leaderboard rows", err)
		return
	}

	utils.Success(w, leaderboard)
}

// collectRows scanne les lignes (username nullable, score) et attribue les
// rangs 1..N par position de sortie. Un joueur supprimé après avoir joué
// garde sa ligne avec un nom de remplacement.
func collectRows(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]model.LeaderboardRow, error) {
	leaderboard := []model.LeaderboardRow{}
	for rows.Next() {
		var row model.LeaderboardRow
		var username *string
		if err := rows.Scan(&username, &row.Score); err != nil {
			return nil, err
		}
		if username != nil {
			row.Username = game.ResolveUsername(*username, true)
		} else {
			row.Username = game.ResolveUsername("", false)
		}
		row.Rank = len(leaderboard) + 1
		leaderboard = append(leaderboard, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaderboard, nil
}
