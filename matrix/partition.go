// SPDX-License-Identifier: MIT

package matrix

// Partition splits the row range [0, rows) into min(workers, rows) contiguous,
// disjoint WorkItems that together cover the range exactly.
//
// Implementation:
//   - Stage 1: k = min(workers, rows); base = rows / k; extra = rows % k.
//   - Stage 2: the first `extra` items get base+1 rows, the rest get base.
//
// Behavior highlights:
//   - Largest and smallest item differ by at most one row.
//   - rows <= 0 yields nil (nothing to schedule).
//   - workers < 1 is treated as 1; Multiply rejects it before getting here.
//
// Complexity:
//   - Time O(k), Space O(k).
func Partition(rows, workers int) []WorkItem {
	if rows <= 0 {
		return nil
	}
	k := min(max(workers, 1), rows)
	base, extra := rows/k, rows%k

	items := make([]WorkItem, k)
	start := 0
	for i := range items {
		size := base
		if i < extra {
			size++
		}
		items[i] = WorkItem{Start: start, End: start + size}
		start += size
	}

	return items
}
