package game

import (
	"testing"
	"time"
)

// Fuseau de référence fixe pour les tests de fenêtres
var paris = mustLoadLocation("Europe/Paris")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func TestWindowStart_Daily(t *testing.T) {
	// Mercredi 15 octobre 2025, 14h30 à Paris
	now := time.Date(2025, 10, 15, 14, 30, 0, 0, paris)

	start := WindowStart(WindowDaily, now, paris)

	expected := time.Date(2025, 10, 15, 0, 0, 0, 0, paris)
	if !start.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, start)
	}

	// Une partie jouée hier soir est hors fenêtre
	yesterday := time.Date(2025, 10, 14, 23, 59, 0, 0, paris)
	if !yesterday.Before(start) {
		t.Error("expected yesterday's entry to fall outside the daily window")
	}

	// Une partie jouée une minute après minuit est dans la fenêtre
	justAfterMidnight := time.Date(2025, 10, 15, 0, 1, 0, 0, paris)
	if justAfterMidnight.Before(start) {
		t.Error("expected an entry one minute after midnight to be inside the daily window")
	}
}

func TestWindowStart_DailyUsesGivenTimezone(t *testing.T) {
	// 23h UTC le 15 = déjà le 16 à Paris: "aujourd'hui" dépend du fuseau
	// injecté, pas de celui de la machine
	now := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)

	start := WindowStart(WindowDaily, now, paris)

	expected := time.Date(2025, 10, 16, 0, 0, 0, 0, paris)
	if !start.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, start)
	}
}

func TestWindowStart_Weekly(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			"wednesday goes back to monday",
			time.Date(2025, 10, 15, 10, 0, 0, 0, paris),
			time.Date(2025, 10, 13, 0, 0, 0, 0, paris),
		},
		{
			"monday stays on monday",
			time.Date(2025, 10, 13, 8, 0, 0, 0, paris),
			time.Date(2025, 10, 13, 0, 0, 0, 0, paris),
		},
		{
			"sunday goes back six days",
			time.Date(2025, 10, 19, 22, 0, 0, 0, paris),
			time.Date(2025, 10, 13, 0, 0, 0, 0, paris),
		},
	}

	for _, tt := range tests {
		start := WindowStart(WindowWeekly, tt.now, paris)
		if !start.Equal(tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, start)
		}
	}
}

func TestWindowStart_Monthly(t *testing.T) {
	now := time.Date(2025, 10, 15, 14, 30, 0, 0, paris)

	start := WindowStart(WindowMonthly, now, paris)

	expected := time.Date(2025, 10, 1, 0, 0, 0, 0, paris)
	if !start.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, start)
	}

	// Le premier du mois à minuit pile est dans la fenêtre
	if expected.Before(start) {
		t.Error("expected the first of the month to be inside the monthly window")
	}

	// Le dernier jour du mois précédent est hors fenêtre
	endOfSeptember := time.Date(2025, 9, 30, 23, 59, 59, 0, paris)
	if !endOfSeptember.Before(start) {
		t.Error("expected september entries to fall outside the october window")
	}
}

func TestParseWindow(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		if _, err := ParseWindow(valid); err != nil {
			t.Errorf("expected %q to be valid: %v", valid, err)
		}
	}
	if _, err := ParseWindow("yearly"); err == nil {
		t.Error("expected yearly to be rejected")
	}
	if _, err := ParseWindow(""); err == nil {
		t.Error("expected empty window to be rejected")
	}
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range []string{"easy", "normal", "hard", "HARD", "Easy"} {
		if !ValidDifficulty(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}
	for _, d := range []string{"", "medium", "expert", "hardcore"} {
		if ValidDifficulty(d) {
			t.Errorf("expected %q to be rejected", d)
		}
	}
}

func TestResolveUsername(t *testing.T) {
	if got := ResolveUsername("testuser1", true); got != "testuser1" {
		t.Errorf("expected testuser1, got %q", got)
	}
	// Utilisateur supprimé après avoir joué: on dégrade, on ne plante pas
	if got := ResolveUsername("", false); got != DeletedPlayerName {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := ResolveUsername("", true); got != DeletedPlayerName {
		t.Errorf("expected placeholder for empty name, got %q", got)
	}
}
