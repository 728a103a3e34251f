package utils

import (
	"database/sql"
)

// NullStringToString convertit sql.NullString en string
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// Int64ArrayToInts convertit un tableau SQL int64 en []int.
// Retourne toujours un slice non nil pour que le JSON sorte [] et pas null.
func Int64ArrayToInts(arr []int64) []int {
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		out = append(out, int(v))
	}
	return out
}

// IntsToInt64Array conversion inverse, pour écrire un integer[] Postgres
func IntsToInt64Array(ints []int) []int64 {
	out := make([]int64, 0, len(ints))
	for _, v := range ints {
		out = append(out, int64(v))
	}
	return out
}
