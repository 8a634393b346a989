package engine

import "sort"

// RankMissing merges the missing fields of several pending schemes into one
// distinct list ordered by how many schemes need the field, most first. Ties
// keep first-seen order.
func RankMissing(perScheme [][]string) []string {
	counts := make(map[string]int)
	var order []string
	for _, fields := range perScheme {
		for _, f := range fields {
			if _, seen := counts[f]; !seen {
				order = append(order, f)
			}
			counts[f]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
