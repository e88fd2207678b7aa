package ezresp

import (
	"sort"
	"strings"
)

// Compare returns -1, 0 or +1 ordering v against w in the canonical order:
// first by variant (the Type declaration order), then by payload, recursing
// into aggregate elements. This is the order used to store Set elements and
// the equality relation that collapses Set duplicates.
func (v Value) Compare(w Value) int {
	if v.Type != w.Type {
		if v.Type < w.Type {
			return -1
		}
		return 1
	}
	switch v.Type {
	case TypeSimpleString, TypeSimpleError, TypeBulkString, TypeBulkError,
		TypeDouble, TypeBigNumber:
		return strings.Compare(v.Str, w.Str)
	case TypeInteger:
		return compareInt64(v.Int, w.Int)
	case TypeNull:
		return 0
	case TypeBoolean:
		// false orders before true
		return compareBool(v.Bool, w.Bool)
	case TypeVerbatimString:
		if c := strings.Compare(v.Enc, w.Enc); c != 0 {
			return c
		}
		return strings.Compare(v.Str, w.Str)
	case TypeArray, TypeSet, TypePushes:
		return compareElems(v.Elems, w.Elems)
	case TypeMap:
		if c := compareElems(v.MapKeys, w.MapKeys); c != 0 {
			return c
		}
		return compareElems(v.MapVals, w.MapVals)
	}
	return 0
}

// Equal reports whether v and w are structurally equal: same variant and,
// recursively, same payload.
func (v Value) Equal(w Value) bool {
	return v.Compare(w) == 0
}

// compareElems orders two element sequences element-wise, with a shorter
// sequence ordering before any longer sequence it is a prefix of.
func compareElems(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a)), int64(len(b)))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	}
	return 0
}

// canonicalize sorts elems into canonical order and drops duplicates under
// structural equality. The input slice is not modified. An empty input
// yields a nil slice, matching what the decoder produces for "~0".
func canonicalize(elems []Value) []Value {
	if len(elems) == 0 {
		return nil
	}
	out := make([]Value, len(elems))
	copy(out, elems)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Compare(out[j]) < 0
	})

	// Equal elements are now adjacent; keep the first of each run
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i].Compare(out[n-1]) != 0 {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
