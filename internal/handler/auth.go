package handler

import (
	"net/http"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/KiptooAbel/snake-game-backend/internal/game"
	"github.com/KiptooAbel/snake-game-backend/internal/middleware"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register crée un compte avec la sauvegarde de jeu par défaut
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		utils.Error(w, http.StatusUnprocessableEntity, "username, email and a password of at least 8 characters are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	ctx := r.Context()
	defaults := game.DefaultProgress()

	var userID string
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash, first_name, last_name,
			total_games, total_score, best_score, gems, hearts, unlocked_levels,
			created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, 0, 0, $6, $7, $8, $9, NOW(), NOW())
		 RETURNING id`,
		req.Username, req.Email, string(hashed), req.FirstName, req.LastName,
		defaults.HighScore, defaults.Gems, defaults.Hearts,
		pq.Int64Array(utils.IntsToInt64Array(defaults.UnlockedLevels)),
	).Scan(&userID)

	if err != nil {
		utils.Error(w, http.StatusConflict, "username or email already taken", err)
		return
	}

	ip, ua := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, userID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}
	refreshToken, err := utils.CreateRefreshToken(ctx, userID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create refresh token", err)
		return
	}

	utils.Created(w, map[string]interface{}{
		"id":            userID,
		"username":      req.Username,
		"token":         token,
		"refresh_token": refreshToken,
	})
}

// Login vérifie les identifiants et ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	var userID, hashedPassword string
	err := database.DB.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1 AND deleted_at IS NULL`,
		strings.TrimSpace(strings.ToLower(req.Email)),
	).Scan(&userID, &hashedPassword)

	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, ua := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, userID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}
	refreshToken, err := utils.CreateRefreshToken(ctx, userID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create refresh token", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"id":            userID,
		"token":         token,
		"refresh_token": refreshToken,
	})
}

// Refresh échange un refresh token valide contre une nouvelle session.
// Le refresh token est tourné à chaque usage.
func Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		utils.Error(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	ctx := r.Context()
	userID, err := utils.ValidateRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid refresh token", err)
		return
	}

	if err := utils.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not rotate refresh token", err)
		return
	}

	ip, ua := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, userID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}
	refreshToken, err := utils.CreateRefreshToken(ctx, userID, ip, ua)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create refresh token", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"token":         token,
		"refresh_token": refreshToken,
	})
}

// Logout invalide la session courante
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateSession(r.Context(), token); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not invalidate session", err)
		return
	}

	utils.Message(w, "logged out")
}

// Profile retourne le profil de l'utilisateur connecté
func Profile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	utils.Success(w, user)
}
