package model

import (
	"time"
)

// GameScore une partie jouée, ligne immuable du journal de scores.
// Jamais mise à jour en place, seulement créée puis éventuellement
// supprimée par son propriétaire.
type GameScore struct {
	ID           int64                  `json:"id"`
	UserID       string                 `json:"userId"`
	Score        int                    `json:"score"`
	Level        int                    `json:"level"`
	GameDuration int                    `json:"gameDuration"` // en secondes
	Difficulty   string                 `json:"difficulty"`   // easy, normal, hard
	GameStats    map[string]interface{} `json:"gameStats,omitempty"`
	Username     string                 `json:"username,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// ScorePage page de l'historique de scores d'un utilisateur
type ScorePage struct {
	Scores     []GameScore `json:"scores"`
	Page       int         `json:"page"`
	PerPage    int         `json:"perPage"`
	TotalCount int         `json:"totalCount"`
}

// BestScore meilleur score d'un utilisateur pour une difficulté donnée
type BestScore struct {
	Difficulty   string    `json:"difficulty"`
	Score        int       `json:"score"`
	Level        int       `json:"level"`
	GameDuration int       `json:"gameDuration"`
	CreatedAt    time.Time `json:"createdAt"`
}
