package model

import (
	"time"

	"github.com/KiptooAbel/snake-game-backend/internal/game"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type UserProfile struct {
	ID         string        `json:"id,omitempty"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	FirstName  string        `json:"firstName,omitempty"`
	LastName   string        `json:"lastName,omitempty"`
	TotalGames int           `json:"totalGames"`
	TotalScore int           `json:"totalScore"`
	GameData   game.Progress `json:"gameData"`
	DateFields
}

// UserStats statistiques agrégées retournées par /user/stats
type UserStats struct {
	TotalGames   int     `json:"total_games"`
	BestScore    int     `json:"best_score"`
	TotalScore   int     `json:"total_score"`
	AverageScore float64 `json:"average_score"`
	Rank         int     `json:"rank"`
}
