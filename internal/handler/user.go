package handler

import (
	"net/http"
	"strings"

	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/KiptooAbel/snake-game-backend/internal/middleware"
	model "github.com/KiptooAbel/snake-game-backend/internal/models"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateProfile met à jour les champs d'identité du compte.
// Les champs de jeu passent par /game-data, jamais par ici.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if user.Username == "" || user.Email == "" {
		utils.Error(w, http.StatusUnprocessableEntity, "username and email cannot be empty")
		return
	}

	_, err = database.DB.Exec(r.Context(),
		`UPDATE users
		 SET username=$1, email=$2, first_name=$3, last_name=$4, updated_at=NOW()
		 WHERE id=$5 AND deleted_at IS NULL`,
		user.Username, user.Email, user.FirstName, user.LastName, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusConflict, "could not update profile (username or email already taken?)", err)
		return
	}

	utils.Success(w, user)
}

// GetUserStats statistiques agrégées du joueur connecté, dont son rang
// parmi tous les joueurs (1 + nombre de joueurs avec un meilleur best_score)
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := r.Context()
	stats := model.UserStats{
		TotalGames: user.TotalGames,
		TotalScore: user.TotalScore,
		BestScore:  user.GameData.HighScore,
	}

	if err := database.DB.QueryRow(ctx,
		`SELECT COALESCE(ROUND(AVG(score), 2), 0) FROM scores WHERE user_id=$1`,
		user.ID,
	).Scan(&stats.AverageScore); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute average score", err)
		return
	}

	if err := database.DB.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM users WHERE best_score > $1 AND deleted_at IS NULL`,
		stats.BestScore,
	).Scan(&stats.Rank); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute rank", err)
		return
	}

	utils.Success(w, stats)
}
