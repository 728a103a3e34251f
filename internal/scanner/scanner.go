package scanner

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/KiptooAbel/snake-game-backend/internal/game"
	model "github.com/KiptooAbel/snake-game-backend/internal/models"
	"github.com/KiptooAbel/snake-game-backend/internal/utils"
)

// RowScanner abstrait pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile.
// Colonnes attendues: id, username, email, first_name, last_name,
// total_games, total_score, best_score, gems, hearts, unlocked_levels,
// created_at, updated_at
func ScanUserProfile(row RowScanner) (*model.UserProfile, error) {
	var user model.UserProfile
	var firstName, lastName sql.NullString
	var levels pq.Int64Array

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &firstName, &lastName,
		&user.TotalGames, &user.TotalScore, &user.GameData.HighScore,
		&user.GameData.Gems, &user.GameData.Hearts, &levels,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.FirstName = utils.NullStringToString(firstName)
	user.LastName = utils.NullStringToString(lastName)
	user.GameData.UnlockedLevels = utils.Int64ArrayToInts(levels)
	if len(user.GameData.UnlockedLevels) == 0 {
		// Colonne NULL pour les comptes d'avant la sauvegarde serveur:
		// le niveau 1 est toujours considéré débloqué
		user.GameData.UnlockedLevels = game.DefaultProgress().UnlockedLevels
	}

	return &user, nil
}

// ScanProgress scanne les quatre colonnes de sauvegarde de jeu.
// Colonnes attendues: gems, hearts, unlocked_levels, best_score
func ScanProgress(row RowScanner) (game.Progress, error) {
	var p game.Progress
	var levels pq.Int64Array

	if err := row.Scan(&p.Gems, &p.Hearts, &levels, &p.HighScore); err != nil {
		return p, err
	}

	p.UnlockedLevels = utils.Int64ArrayToInts(levels)
	if len(p.UnlockedLevels) == 0 {
		p.UnlockedLevels = game.DefaultProgress().UnlockedLevels
	}

	return p, nil
}

// ScanGameScore scanne une ligne SQL vers un GameScore.
// Colonnes attendues: id, user_id, score, level, game_duration, difficulty,
// game_stats, created_at
func ScanGameScore(row RowScanner) (*model.GameScore, error) {
	var s model.GameScore
	var statsJSON []byte

	err := row.Scan(
		&s.ID, &s.UserID, &s.Score, &s.Level, &s.GameDuration,
		&s.Difficulty, &statsJSON, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if statsJSON != nil {
		if err := json.Unmarshal(statsJSON, &s.GameStats); err != nil {
			return nil, err
		}
	}

	return &s, nil
}
