package scanner

import (
	"reflect"
	"testing"
	"time"

	"github.com/lib/pq"
)

// stubRow renvoie des valeurs préparées dans l'ordre des dest
type stubRow struct {
	values []interface{}
}

func (s *stubRow) Scan(dest ...interface{}) error {
	for i, d := range dest {
		switch v := d.(type) {
		case *int:
			*v = s.values[i].(int)
		case *int64:
			*v = s.values[i].(int64)
		case *string:
			*v = s.values[i].(string)
		case *pq.Int64Array:
			if s.values[i] != nil {
				*v = s.values[i].(pq.Int64Array)
			}
		case *[]byte:
			if s.values[i] != nil {
				*v = s.values[i].([]byte)
			}
		case *time.Time:
			*v = s.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanProgress(t *testing.T) {
	row := &stubRow{values: []interface{}{12, 3, pq.Int64Array{1, 2, 5}, 400}}

	p, err := ScanProgress(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Gems != 12 || p.Hearts != 3 || p.HighScore != 400 {
		t.Errorf("unexpected progress: %+v", p)
	}
	if !reflect.DeepEqual(p.UnlockedLevels, []int{1, 2, 5}) {
		t.Errorf("unexpected levels: %v", p.UnlockedLevels)
	}
}

// TestScanProgress_NullLevels colonne unlocked_levels NULL: le niveau 1
// est considéré débloqué par défaut
func TestScanProgress_NullLevels(t *testing.T) {
	row := &stubRow{values: []interface{}{0, 0, nil, 0}}

	p, err := ScanProgress(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(p.UnlockedLevels, []int{1}) {
		t.Errorf("expected default level 1, got %v", p.UnlockedLevels)
	}
}

func TestScanGameScore_WithStats(t *testing.T) {
	created := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	row := &stubRow{values: []interface{}{
		int64(7), "user-1", 250, 3, 95, "hard",
		[]byte(`{"food_eaten": 42}`), created,
	}}

	s, err := ScanGameScore(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ID != 7 || s.Score != 250 || s.Difficulty != "hard" {
		t.Errorf("unexpected score: %+v", s)
	}
	if s.GameStats["food_eaten"] != float64(42) {
		t.Errorf("expected game stats to be decoded, got %v", s.GameStats)
	}
	if !s.CreatedAt.Equal(created) {
		t.Errorf("unexpected created_at: %v", s.CreatedAt)
	}
}

// TestScanGameScore_NullStats game_stats est nullable
func TestScanGameScore_NullStats(t *testing.T) {
	row := &stubRow{values: []interface{}{
		int64(8), "user-1", 100, 1, 30, "easy", nil, time.Now(),
	}}

	s, err := ScanGameScore(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GameStats != nil {
		t.Errorf("expected nil stats, got %v", s.GameStats)
	}
}
