package engine

import "sort"

// keyClasses holds the three disjoint key sets produced by matching.
// Duplicated keys were already filtered out by the indexer and appear in
// none of the sets.
type keyClasses struct {
	removed []string // only in first table
	added   []string // only in second table
	common  []string // in both
}

// classifyKeys set-differences the two key indexes. A key duplicated in
// either table is excluded from every class, even when it is unique in the
// other table. Each slice is sorted with Go's ordinal (byte-wise) string
// ordering so results are reproducible across runs and platforms regardless
// of input row order.
func classifyKeys(first, second *KeyIndex) keyClasses {
	var classes keyClasses

	for key := range first.Rows {
		if _, dup := second.Duplicates[key]; dup {
			continue
		}
		if _, ok := second.Rows[key]; ok {
			classes.common = append(classes.common, key)
		} else {
			classes.removed = append(classes.removed, key)
		}
	}
	for key := range second.Rows {
		if _, dup := first.Duplicates[key]; dup {
			continue
		}
		if _, ok := first.Rows[key]; !ok {
			classes.added = append(classes.added, key)
		}
	}

	sort.Strings(classes.removed)
	sort.Strings(classes.added)
	sort.Strings(classes.common)

	return classes
}
