package lib

import "sort"

// SortedCopy returns a lexically sorted copy of items, leaving items untouched
func SortedCopy(items []string) []string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return sorted
}
