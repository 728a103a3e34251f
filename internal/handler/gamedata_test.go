package handler

import (
	"reflect"
	"testing"

	"github.com/lib/pq"

	"github.com/KiptooAbel/snake-game-backend/internal/game"
)

// TestFieldAssignment_OnlyNamedColumn une mise à jour de champ ne touche que
// sa propre colonne: le best_score du snapshot n'est pas réécrit quand on
// change les gems ou les coeurs, une soumission de score concurrente reste
// donc intacte
func TestFieldAssignment_OnlyNamedColumn(t *testing.T) {
	p := game.Progress{Gems: 7, Hearts: 2, UnlockedLevels: []int{1, 2}, HighScore: 300}

	tests := []struct {
		field  game.Field
		column string
		value  interface{}
	}{
		{game.FieldGems, "gems", 7},
		{game.FieldHearts, "hearts", 2},
		{game.FieldUnlockedLevels, "unlocked_levels", pq.Int64Array{1, 2}},
		{game.FieldHighScore, "best_score", 300},
	}

	for _, tt := range tests {
		column, value, err := fieldAssignment(tt.field, p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.field, err)
		}
		if column != tt.column {
			t.Errorf("%s: expected column %q, got %q", tt.field, tt.column, column)
		}
		if !reflect.DeepEqual(value, tt.value) {
			t.Errorf("%s: expected value %v, got %v", tt.field, tt.value, value)
		}
	}
}

func TestFieldAssignment_UnknownField(t *testing.T) {
	if _, _, err := fieldAssignment(game.Field("total_games"), game.Progress{}); err == nil {
		t.Error("expected an error for an unknown field")
	}
}
