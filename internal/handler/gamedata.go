package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/KiptooAbel/snake-game-backend/internal/game"
	"github.com/KiptooAbel/snake-game-backend/internal/middleware"
	"github.com/KiptooAbel/snake-game-backend/internal/scanner"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

type SyncRequest struct {
	Gems           *int  `json:"gems"`
	Hearts         *int  `json:"hearts"`
	UnlockedLevels []int `json:"unlocked_levels"`
	HighScore      *int  `json:"high_score"`
}

type UpdateFieldRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

type ModifyRequest struct {
	Amount *int `json:"amount"`
}

type UnlockLevelRequest struct {
	Level *int `json:"level"`
}

// GetGameData retourne la sauvegarde de jeu de l'utilisateur connecté
func GetGameData(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	utils.Success(w, user.GameData)
}

// SyncGameData fusionne la sauvegarde du device avec celle du serveur.
// La lecture-fusion-écriture est faite sous verrou de ligne pour que deux
// syncs concurrents du même utilisateur ne s'écrasent pas mutuellement.
func SyncGameData(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Gems == nil || req.Hearts == nil || req.HighScore == nil || req.UnlockedLevels == nil {
		utils.Error(w, http.StatusUnprocessableEntity, "gems, hearts, unlocked_levels and high_score are required")
		return
	}
	if *req.Gems < 0 || *req.Hearts < 0 || *req.HighScore < 0 {
		utils.Error(w, http.StatusUnprocessableEntity, "numeric fields must be non-negative integers")
		return
	}
	for _, l := range req.UnlockedLevels {
		if l < 1 {
			utils.Error(w, http.StatusUnprocessableEntity, "levels must be positive integers")
			return
		}
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	local := game.Progress{
		Gems:           *req.Gems,
		Hearts:         *req.Hearts,
		UnlockedLevels: game.NormalizeLevels(req.UnlockedLevels),
		HighScore:      *req.HighScore,
	}

	ctx := r.Context()
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	server, err := scanner.ScanProgress(tx.QueryRow(ctx,
		`SELECT gems, hearts, unlocked_levels, best_score
		 FROM users WHERE id=$1 AND deleted_at IS NULL
		 FOR UPDATE`,
		user.ID,
	))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load server game data", err)
		return
	}

	merged := game.Reconcile(local, server)

	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET gems=$1, hearts=$2, unlocked_levels=$3, best_score=$4, updated_at=NOW()
		 WHERE id=$5`,
		merged.Gems, merged.Hearts,
		pq.Int64Array(utils.IntsToInt64Array(merged.UnlockedLevels)),
		merged.HighScore, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save merged game data", err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit sync", err)
		return
	}

	utils.Success(w, merged)
}

// UpdateGameDataField écrase un seul champ de la sauvegarde.
// Enumération fermée des champs, chacun avec sa propre validation:
// contrairement au sync, les coeurs sont bornés à [0,5] ici.
func UpdateGameDataField(w http.ResponseWriter, r *http.Request) {
	var req UpdateFieldRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	field, err := game.ParseField(req.Field)
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var intValue int
	var levels []int
	if field == game.FieldUnlockedLevels {
		if err := json.Unmarshal(req.Value, &levels); err != nil {
			utils.Error(w, http.StatusUnprocessableEntity, "unlocked_levels must be an array of integers")
			return
		}
	} else {
		if err := json.Unmarshal(req.Value, &intValue); err != nil {
			utils.Error(w, http.StatusUnprocessableEntity, "value must be an integer")
			return
		}
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	updated, err := game.ApplyField(user.GameData, field, intValue, levels)
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := saveField(r.Context(), user.ID, field, updated); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update game data", err)
		return
	}

	utils.Success(w, updated)
}

// ModifyGems applique un delta relatif aux gems (plancher 0, pas de plafond)
func ModifyGems(w http.ResponseWriter, r *http.Request) {
	var req ModifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.Amount == nil {
		utils.Error(w, http.StatusUnprocessableEntity, "amount is required")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	newGems := game.Adjust(user.GameData.Gems, *req.Amount, 0, nil)
	_, err = database.DB.Exec(r.Context(),
		`UPDATE users SET gems=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		newGems, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update gems", err)
		return
	}

	utils.Success(w, map[string]int{"gems": newGems})
}

// ModifyHearts applique un delta relatif aux coeurs, borné à [0,5]
func ModifyHearts(w http.ResponseWriter, r *http.Request) {
	var req ModifyRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.Amount == nil {
		utils.Error(w, http.StatusUnprocessableEntity, "amount is required")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	maxHearts := game.MaxHearts
	newHearts := game.Adjust(user.GameData.Hearts, *req.Amount, game.MinHearts, &maxHearts)
	_, err = database.DB.Exec(r.Context(),
		`UPDATE users SET hearts=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		newHearts, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update hearts", err)
		return
	}

	utils.Success(w, map[string]int{"hearts": newHearts})
}

// UnlockLevel débloque un niveau; redébloquer est un no-op
func UnlockLevel(w http.ResponseWriter, r *http.Request) {
	var req UnlockLevelRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.Level == nil || *req.Level < 1 {
		utils.Error(w, http.StatusUnprocessableEntity, "level is required and must be a positive integer")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	levels := game.UnlockLevel(user.GameData.UnlockedLevels, *req.Level)
	_, err = database.DB.Exec(r.Context(),
		`UPDATE users SET unlocked_levels=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		pq.Int64Array(utils.IntsToInt64Array(levels)), user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not unlock level", err)
		return
	}

	utils.Success(w, map[string]interface{}{"unlocked_levels": levels})
}

// fieldAssignment associe un champ à sa colonne SQL et à la valeur à écrire,
// prise dans la sauvegarde déjà validée par game.ApplyField
func fieldAssignment(f game.Field, p game.Progress) (string, interface{}, error) {
	switch f {
	case game.FieldGems:
		return "gems", p.Gems, nil
	case game.FieldHearts:
		return "hearts", p.Hearts, nil
	case game.FieldUnlockedLevels:
		return "unlocked_levels", pq.Int64Array(utils.IntsToInt64Array(p.UnlockedLevels)), nil
	case game.FieldHighScore:
		return "best_score", p.HighScore, nil
	}
	return "", nil, fmt.Errorf("unknown field: %s", f)
}

// saveField n'écrit que la colonne du champ visé. Les autres colonnes ne sont
// jamais réécrites depuis le snapshot chargé en début de requête: un
// best_score commité entre-temps par une soumission de score reste intact.
func saveField(ctx context.Context, userID string, f game.Field, p game.Progress) error {
	column, value, err := fieldAssignment(f, p)
	if err != nil {
		return err
	}
	_, err = database.DB.Exec(ctx,
		`UPDATE users SET `+column+`=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		value, userID,
	)
	return err
}
