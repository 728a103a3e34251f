package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/KiptooAbel/snake-game-backend/internal/game"
)

// stubRows simule un résultat de requête classement: username nullable, score
type stubRows struct {
	usernames []*string
	scores    []int
	pos       int
	err       error
}

func (s *stubRows) Next() bool { return s.pos < len(s.scores) }

func (s *stubRows) Scan(dest ...interface{}) error {
	*(dest[0].(**string)) = s.usernames[s.pos]
	*(dest[1].(*int)) = s.scores[s.pos]
	s.pos++
	return nil
}

func (s *stubRows) Err() error { return s.err }

func strPtr(s string) *string { return &s }

// TestCollectRows_SequentialRanks les rangs suivent l'ordre de sortie de la
// requête: 1..N sans trou, même en cas d'égalité de score
func TestCollectRows_SequentialRanks(t *testing.T) {
	rows := &stubRows{
		usernames: []*string{strPtr("alice"), strPtr("bob"), strPtr("carol")},
		scores:    []int{500, 300, 300},
	}

	board, err := collectRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(board) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(board))
	}
	for i, row := range board {
		if row.Rank != i+1 {
			t.Errorf("row %d: expected rank %d, got %d", i, i+1, row.Rank)
		}
	}
	if board[0].Username != "alice" || board[0].Score != 500 {
		t.Errorf("unexpected first row: %+v", board[0])
	}
}

// TestCollectRows_DeletedPlayer un username NULL (joueur supprimé) garde sa
// ligne avec le nom de remplacement, sans décaler les rangs suivants
func TestCollectRows_DeletedPlayer(t *testing.T) {
	rows := &stubRows{
		usernames: []*string{strPtr("alice"), nil, strPtr("bob")},
		scores:    []int{400, 350, 200},
	}

	board, err := collectRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if board[1].Username != game.DeletedPlayerName {
		t.Errorf("expected placeholder username, got %q", board[1].Username)
	}
	if board[1].Rank != 2 || board[1].Score != 350 {
		t.Errorf("unexpected deleted player row: %+v", board[1])
	}
	if board[2].Rank != 3 {
		t.Errorf("expected rank 3 after deleted player, got %d", board[2].Rank)
	}
}

// TestCollectRows_IterationError une erreur survenue en cours d'itération
// est remontée au lieu de retourner un classement tronqué
func TestCollectRows_IterationError(t *testing.T) {
	rows := &stubRows{
		usernames: []*string{strPtr("alice")},
		scores:    []int{100},
		err:       errors.New("connection reset"),
	}

	if _, err := collectRows(rows); err == nil {
		t.Error("expected the iteration error to surface")
	}
}

func TestCollectRows_Empty(t *testing.T) {
	board, err := collectRows(&stubRows{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board == nil || len(board) != 0 {
		t.Errorf("expected an empty board, got %v", board)
	}
}

// TestWindowStart_UsesInjectedClockAndZone la fenêtre est calculée avec
// l'horloge injectée et le fuseau fixé par SetLeaderboardLocation: à 23h30
// UTC le jour calendaire parisien a déjà basculé
func TestWindowStart_UsesInjectedClockAndZone(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("could not load location: %v", err)
	}

	origNow, origLoc := nowFunc, leaderboardLoc
	defer func() { nowFunc, leaderboardLoc = origNow, origLoc }()

	nowFunc = func() time.Time { return time.Date(2025, 10, 14, 23, 30, 0, 0, time.UTC) }
	SetLeaderboardLocation(paris)

	start := windowStart(game.WindowDaily)
	want := time.Date(2025, 10, 15, 0, 0, 0, 0, paris)
	if !start.Equal(want) {
		t.Errorf("expected window start %v, got %v", want, start)
	}
}

// TestSetLeaderboardLocation_NilIgnored un fuseau nil ne remplace pas le
// fuseau courant
func TestSetLeaderboardLocation_NilIgnored(t *testing.T) {
	orig := leaderboardLoc
	defer func() { leaderboardLoc = orig }()

	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("could not load location: %v", err)
	}

	SetLeaderboardLocation(paris)
	SetLeaderboardLocation(nil)

	if leaderboardLoc != paris {
		t.Errorf("expected location to stay Europe/Paris, got %v", leaderboardLoc)
	}
}
