package utils

import (
	"reflect"
	"testing"
)

func TestInt64ArrayToInts(t *testing.T) {
	got := Int64ArrayToInts([]int64{1, 2, 3})
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", got)
	}

	// Jamais nil, pour que le JSON sorte [] et pas null
	empty := Int64ArrayToInts(nil)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestIntsToInt64Array(t *testing.T) {
	got := IntsToInt64Array([]int{4, 5})
	if !reflect.DeepEqual(got, []int64{4, 5}) {
		t.Errorf("expected [4 5], got %v", got)
	}
}
