package model

import (
	"time"
)

// LeaderboardRow une ligne de classement, dérivée à la lecture, jamais
// persistée. Le rang est attribué en Go par position de sortie.
type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// HighScoreRow variante étendue pour /high-scores: une ligne par partie,
// pas de regroupement par joueur
type HighScoreRow struct {
	Rank       int       `json:"rank"`
	Username   string    `json:"username"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}
