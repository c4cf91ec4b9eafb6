package merge

import (
	"sort"

	"github.com/a11yscan/a11yscan/internal/model"
)

// DuplicateIndices returns the positions of every record that duplicates
// an earlier record in the sequence, in ascending order with no position
// listed twice. Records a and b are duplicates iff their target and
// failureSummary are both equal (exact string equality; two records with
// absent failure summaries and equal targets are duplicates of each
// other). The first occurrence of each key is never listed, so "first
// occurrence in the given sequence wins".
//
// Design decision: We build a key to first-index map rather than
// comparing pairwise. It is O(n), and unlike the pairwise scan it cannot
// flag one position twice when a record matches more than one earlier
// record, which removes a whole class of double-removal bugs.
func DuplicateIndices(records []model.ViolationRecord) []int {
	seen := make(map[string]int, len(records))
	var dupes []int
	for i, r := range records {
		key := r.Key()
		if _, ok := seen[key]; ok {
			dupes = append(dupes, i)
			continue
		}
		seen[key] = i
	}
	return dupes
}

// RemoveIndices deletes the records at the given positions and returns
// the remaining sequence in original order. The removal is index-safe:
// the position set is snapshotted and deduplicated before any deletion,
// then applied in strictly descending order so removing a higher
// position never shifts a still-pending lower one. Positions outside the
// sequence are ignored.
func RemoveIndices(records []model.ViolationRecord, indices []int) []model.ViolationRecord {
	if len(indices) == 0 {
		return records
	}

	// Snapshot, bound-check and deduplicate before touching the slice.
	unique := make(map[int]struct{}, len(indices))
	todo := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(records) {
			continue
		}
		if _, ok := unique[idx]; ok {
			continue
		}
		unique[idx] = struct{}{}
		todo = append(todo, idx)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(todo)))

	for _, idx := range todo {
		records = append(records[:idx], records[idx+1:]...)
	}
	return records
}

// Dedupe collapses every duplicate group in the sequence to its
// earliest-occurring representative and returns the reduced sequence
// along with the number of records removed. Running Dedupe on its own
// output removes nothing further.
func Dedupe(records []model.ViolationRecord) ([]model.ViolationRecord, int) {
	dupes := DuplicateIndices(records)
	return RemoveIndices(records, dupes), len(dupes)
}
