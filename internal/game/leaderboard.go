package game

import (
	"fmt"
	"strings"
	"time"
)

// LeaderboardLimit nombre maximum de lignes retournées par un classement
const LeaderboardLimit = 100

// Window représente une fenêtre calendaire de classement
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

// ParseWindow valide un identifiant de fenêtre envoyé par le client
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowDaily, WindowWeekly, WindowMonthly:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown leaderboard window: %q", s)
}

// WindowStart calcule l'instant de début d'une fenêtre calendaire.
// Le fuseau est passé explicitement (config LEADERBOARD_TIMEZONE), jamais
// celui de la machine, pour que "aujourd'hui" soit déterministe et testable.
//   - daily:   minuit du jour courant
//   - weekly:  minuit du lundi le plus récent
//   - monthly: minuit du premier jour du mois courant
func WindowStart(w Window, now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	switch w {
	case WindowDaily:
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	case WindowWeekly:
		// time.Weekday place dimanche à 0, on veut un début de semaine lundi
		offset := (int(local.Weekday()) + 6) % 7
		monday := local.AddDate(0, 0, -offset)
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
	case WindowMonthly:
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	}
	return time.Time{}
}

// Difficulties liste les difficultés acceptées
var Difficulties = []string{"easy", "normal", "hard"}

// ValidDifficulty vérifie une difficulté avant toute requête SQL
func ValidDifficulty(s string) bool {
	s = strings.ToLower(s)
	for _, d := range Difficulties {
		if s == d {
			return true
		}
	}
	return false
}

// DeletedPlayerName nom affiché quand l'utilisateur d'une ligne de score
// a été supprimé entre temps. On dégrade l'affichage plutôt que d'échouer.
const DeletedPlayerName = "Unknown Player"

// ResolveUsername remplace un nom manquant par le placeholder
func ResolveUsername(username string, found bool) string {
	if !found || username == "" {
		return DeletedPlayerName
	}
	return username
}
