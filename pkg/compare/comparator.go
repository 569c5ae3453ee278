package compare

import (
	"sort"
)

// Result holds the asymmetric differences between two name lists
type Result struct {
	// OnlyInFirst are keys found only on the first side, sorted
	OnlyInFirst []string `json:"only_in_first"`

	// OnlyInSecond are keys found only on the second side, sorted
	OnlyInSecond []string `json:"only_in_second"`
}

// TotalDifferences returns the combined number of unique keys on both sides
func (r Result) TotalDifferences() int {
	return len(r.OnlyInFirst) + len(r.OnlyInSecond)
}

// Identical reports whether both sides resolved to the same key set
func (r Result) Identical() bool {
	return r.TotalDifferences() == 0
}

// KeySet is the set of keys extracted from one side
type KeySet map[string]struct{}

// Has reports whether key is in the set
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys extracts the key set of names under mode.
// Names without a key under the mode are counted in skipped.
func Keys(names []string, mode Mode) (set KeySet, skipped int) {
	keyOf := mode.KeyFunc()
	set = make(KeySet, len(names))
	for _, name := range names {
		key, ok := keyOf(name)
		if !ok {
			skipped++
			continue
		}
		set[key] = struct{}{}
	}
	return set, skipped
}

// Compare reduces both name lists to key sets under mode and returns
// the keys unique to each side. It has no side effects and never fails.
func Compare(first, second []string, mode Mode) Result {
	firstKeys, _ := Keys(first, mode)
	secondKeys, _ := Keys(second, mode)
	return CompareKeys(firstKeys, secondKeys)
}

// CompareKeys computes the asymmetric differences of two key sets
func CompareKeys(first, second KeySet) Result {
	return Result{
		OnlyInFirst:  difference(first, second),
		OnlyInSecond: difference(second, first),
	}
}

// difference returns the sorted keys of a that are absent from b
func difference(a, b KeySet) []string {
	out := make([]string, 0)
	for key := range a {
		if !b.Has(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
