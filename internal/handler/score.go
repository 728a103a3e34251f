package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/KiptooAbel/snake-game-backend/internal/game"
	"github.com/KiptooAbel/snake-game-backend/internal/middleware"
	model "github.com/KiptooAbel/snake-game-backend/internal/models"
	"github.com/KiptooAbel/snake-game-backend/internal/scanner"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

// ScoresPerPage taille de page de l'historique de scores
const ScoresPerPage = 20

type CreateScoreRequest struct {
	Score        *int                   `json:"score"`
	Level        *int                   `json:"level"`
	GameDuration *int                   `json:"game_duration"`
	Difficulty   string                 `json:"difficulty"`
	GameStats    map[string]interface{} `json:"game_stats"`
}

// CreateScore enregistre une partie terminée. La ligne de score, les
// compteurs (total_games, total_score) et le best_score sont commités
// ensemble ou pas du tout.
func CreateScore(w http.ResponseWriter, r *http.Request) {
	var req CreateScoreRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Score == nil || req.Level == nil || req.GameDuration == nil || req.Difficulty == "" {
		utils.Error(w, http.StatusUnprocessableEntity, "score, level, game_duration and difficulty are required")
		return
	}
	if *req.Score < 0 || *req.Level < 1 || *req.GameDuration < 0 {
		utils.Error(w, http.StatusUnprocessableEntity, "score and game_duration must be non-negative, level must be positive")
		return
	}
	difficulty := strings.ToLower(req.Difficulty)
	if !game.ValidDifficulty(difficulty) {
		utils.Error(w, http.StatusUnprocessableEntity, "difficulty must be one of: easy, normal, hard")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	var statsJSON []byte
	if req.GameStats != nil {
		statsJSON, err = json.Marshal(req.GameStats)
		if err != nil {
			utils.Error(w, http.StatusUnprocessableEntity, "invalid game_stats")
			return
		}
	}

	ctx := r.Context()
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	score := model.GameScore{
		UserID:       user.ID,
		Score:        *req.Score,
		Level:        *req.Level,
		GameDuration: *req.GameDuration,
		Difficulty:   difficulty,
		GameStats:    req.GameStats,
		Username:     user.Username,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO scores(user_id, score, level, game_duration, difficulty, game_stats, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, NOW())
		 RETURNING id, created_at`,
		user.ID, score.Score, score.Level, score.GameDuration, score.Difficulty, statsJSON,
	).Scan(&score.ID, &score.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save score", err)
		return
	}

	// Cumuls + cliquet du best_score: GREATEST garantit qu'il ne descend jamais
	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET total_games = total_games + 1,
		     total_score = total_score + $1,
		     best_score  = GREATEST(best_score, $1),
		     updated_at  = NOW()
		 WHERE id=$2`,
		score.Score, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user totals", err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit score", err)
		return
	}

	utils.Created(w, score)
}

// GetScores retourne l'historique paginé de l'utilisateur connecté,
// meilleur score d'abord puis plus récent d'abord
func GetScores(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	page := utils.QueryInt(r, "page", 1)
	offset := (page - 1) * ScoresPerPage

	ctx := r.Context()

	var total int
	if err := database.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM scores WHERE user_id=$1`, user.ID,
	).Scan(&total); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count scores", err)
		return
	}

	rows, err := database.DB.Query(ctx,
		`SELECT id, user_id, score, level, game_duration, difficulty, game_stats, created_at
		 FROM scores
		 WHERE user_id=$1
		 ORDER BY score DESC, created_at DESC
		 LIMIT $2 OFFSET $3`,
		user.ID, ScoresPerPage, offset,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query scores", err)
		return
	}
	defer rows.Close()

	scores := []model.GameScore{}
	for rows.Next() {
		s, err := scanner.ScanGameScore(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan score row", err)
			return
		}
		scores = append(scores, *s)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read score rows", err)
		return
	}

	utils.Success(w, model.ScorePage{
		Scores:     scores,
		Page:       page,
		PerPage:    ScoresPerPage,
		TotalCount: total,
	})
}

// GetBestScores retourne le meilleur score de l'utilisateur par difficulté
func GetBestScores(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	rows, err := database.DB.Query(r.Context(), `
		SELECT DISTINCT ON (difficulty)
			difficulty, score, level, game_duration, created_at
		FROM scores
		WHERE user_id=$1
		ORDER BY difficulty, score DESC, created_at DESC
	`, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query best scores", err)
		return
	}
	defer rows.Close()

	best := []model.BestScore{}
	for rows.Next() {
		var b model.BestScore
		if err := rows.Scan(&b.Difficulty, &b.Score, &b.Level, &b.GameDuration, &b.CreatedAt); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan best score row", err)
			return
		}
		best = append(best, b)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read best score rows", err)
		return
	}

	utils.Success(w, best)
}

// GetScore retourne une partie; 404 si inexistante, 403 si elle appartient
// à un autre joueur (les deux cas ne se confondent jamais)
func GetScore(w http.ResponseWriter, r *http.Request) {
	scoreID, ok := parseScoreID(w, r)
	if !ok {
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	score, err := scanner.ScanGameScore(database.DB.QueryRow(r.Context(),
		`SELECT id, user_id, score, level, game_duration, difficulty, game_stats, created_at
		 FROM scores WHERE id=$1`,
		scoreID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "score not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not query score", err)
		return
	}

	if score.UserID != user.ID {
		utils.Error(w, http.StatusForbidden, "score belongs to another player")
		return
	}

	utils.Success(w, score)
}

// DeleteScore supprime une partie, réservée à son propriétaire
func DeleteScore(w http.ResponseWriter, r *http.Request) {
	scoreID, ok := parseScoreID(w, r)
	if !ok {
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := r.Context()
	var ownerID string
	err = database.DB.QueryRow(ctx, `SELECT user_id FROM scores WHERE id=$1`, scoreID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "score not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not query score", err)
		return
	}
	if ownerID != user.ID {
		utils.Error(w, http.StatusForbidden, "score belongs to another player")
		return
	}

	if _, err := database.DB.Exec(ctx, `DELETE FROM scores WHERE id=$1`, scoreID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete score", err)
		return
	}

	utils.Message(w, "score deleted")
}

// GetHighScores liste publique des meilleures parties, une ligne par partie
// (pas de regroupement par joueur), filtre de difficulté optionnel
func GetHighScores(w http.ResponseWriter, r *http.Request) {
	difficulty := strings.ToLower(r.URL.Query().Get("difficulty"))
	if difficulty != "" && !game.ValidDifficulty(difficulty) {
		utils.Error(w, http.StatusBadRequest, "unknown difficulty")
		return
	}

	limit := utils.QueryInt(r, "limit", 10)
	if limit > game.LeaderboardLimit {
		limit = game.LeaderboardLimit
	}

	sqlQuery := `
		SELECT u.username, s.score, s.level, s.difficulty, s.created_at
		FROM scores s
		LEFT JOIN users u ON s.user_id = u.id AND u.deleted_at IS NULL
	`
	args := []interface{}{}
	if difficulty != "" {
		sqlQuery += ` WHERE s.difficulty = $1`
		args = append(args, difficulty)
	}
	sqlQuery += ` ORDER BY s.score DESC, s.id ASC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)

	rows, err := database.DB.Query(r.Context(), sqlQuery, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query high scores", err)
		return
	}
	defer rows.Close()

	highScores := []model.HighScoreRow{}
	for rows.Next() {
		var row model.HighScoreRow
		var username *string
		if err := rows.Scan(&username, &row.Score, &row.Level, &row.Difficulty, &row.CreatedAt); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan high score row", err)
			return
		}
		if username != nil {
			row.Username = game.ResolveUsername(*username, true)
		} else {
			row.Username = game.ResolveUsername("", false)
		}
		row.Rank = len(highScores) + 1
		highScores = append(highScores, row)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read high score rows", err)
		return
	}

	utils.Success(w, highScores)
}

func parseScoreID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		utils.Error(w, http.StatusBadRequest, "invalid score id")
		return 0, false
	}
	return id, true
}
