package game

import (
	"fmt"
	"sort"
)

// Bornes des coeurs (vies). Les gems et le high score n'ont pas de plafond.
const (
	MinHearts = 0
	MaxHearts = 5
)

// Progress représente la sauvegarde de jeu d'un utilisateur
type Progress struct {
	Gems           int   `json:"gems"`
	Hearts         int   `json:"hearts"`
	UnlockedLevels []int `json:"unlocked_levels"`
	HighScore      int   `json:"high_score"`
}

// DefaultProgress retourne la sauvegarde initiale d'un nouveau compte
func DefaultProgress() Progress {
	return Progress{
		Gems:           0,
		Hearts:         0,
		UnlockedLevels: []int{1},
		HighScore:      0,
	}
}

// Reconcile fusionne la sauvegarde locale (device) et la sauvegarde serveur.
// Chaque champ numérique prend le maximum des deux, les niveaux débloqués
// prennent l'union triée sans doublons. La fusion ne fait jamais régresser
// un champ, et la passer deux fois avec les mêmes entrées donne le même
// résultat. Les coeurs ne sont PAS plafonnés à 5 ici, seul le chemin de mise
// à jour par champ applique la borne.
func Reconcile(local, server Progress) Progress {
	return Progress{
		Gems:           maxInt(local.Gems, server.Gems),
		Hearts:         maxInt(local.Hearts, server.Hearts),
		UnlockedLevels: mergeLevels(local.UnlockedLevels, server.UnlockedLevels),
		HighScore:      maxInt(local.HighScore, server.HighScore),
	}
}

// Adjust applique un delta relatif puis borne le résultat.
// hi à nil signifie pas de plafond (cas des gems).
func Adjust(current, delta, lo int, hi *int) int {
	v := current + delta
	if v < lo {
		v = lo
	}
	if hi != nil && v > *hi {
		v = *hi
	}
	return v
}

// UnlockLevel ajoute un niveau à la liste en gardant le tri et l'unicité.
// Idempotent: redébloquer un niveau déjà présent ne change rien.
func UnlockLevel(levels []int, level int) []int {
	for _, l := range levels {
		if l == level {
			return levels
		}
	}
	out := make([]int, len(levels), len(levels)+1)
	copy(out, levels)
	out = append(out, level)
	sort.Ints(out)
	return out
}

// NormalizeLevels trie et déduplique une liste de niveaux venant du client
func NormalizeLevels(levels []int) []int {
	return mergeLevels(levels, nil)
}

func mergeLevels(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	merged := make([]int, 0, len(a)+len(b))
	for _, l := range a {
		if !seen[l] {
			seen[l] = true
			merged = append(merged, l)
		}
	}
	for _, l := range b {
		if !seen[l] {
			seen[l] = true
			merged = append(merged, l)
		}
	}
	sort.Ints(merged)
	return merged
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Field identifie un champ de sauvegarde modifiable individuellement.
// Enumération fermée: pas d'affectation dynamique de colonne.
type Field string

const (
	FieldGems           Field = "gems"
	FieldHearts         Field = "hearts"
	FieldUnlockedLevels Field = "unlocked_levels"
	FieldHighScore      Field = "high_score"
)

// ParseField valide un nom de champ envoyé par le client
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldGems, FieldHearts, FieldUnlockedLevels, FieldHighScore:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown game data field: %q", s)
}

// ApplyField écrase un champ de la sauvegarde (pas de fusion max ici).
// Contrairement à Reconcile, ce chemin borne les coeurs à [0,5].
func ApplyField(p Progress, f Field, intValue int, levels []int) (Progress, error) {
	switch f {
	case FieldGems:
		if intValue < 0 {
			return p, fmt.Errorf("gems must be a non-negative integer")
		}
		p.Gems = intValue
	case FieldHearts:
		if intValue < MinHearts || intValue > MaxHearts {
			return p, fmt.Errorf("hearts must be an integer between %d and %d", MinHearts, MaxHearts)
		}
		p.Hearts = intValue
	case FieldHighScore:
		if intValue < 0 {
			return p, fmt.Errorf("high_score must be a non-negative integer")
		}
		p.HighScore = intValue
	case FieldUnlockedLevels:
		for _, l := range levels {
			if l < 1 {
				return p, fmt.Errorf("levels must be positive integers")
			}
		}
		p.UnlockedLevels = NormalizeLevels(levels)
	default:
		return p, fmt.Errorf("unknown game data field: %q", f)
	}
	return p, nil
}
