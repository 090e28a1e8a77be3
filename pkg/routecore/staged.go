package routecore

import "sort"

// StagedArray is an append-order-preserving list partitioned by an integer
// stage. Lower stages run earlier; items appended at equal stages keep their
// relative insertion order.
type StagedArray[T any] struct {
	items []stagedItem[T]
}

type stagedItem[T any] struct {
	stage int
	seq   int
	value T
}

// Append inserts items at the given stage, preserving the invariant that
// items with a strictly smaller stage stay to the left, items with a
// strictly greater stage stay to the right, and items sharing this call's
// stage with previously-appended items stay to the right of those.
func (s *StagedArray[T]) Append(stage int, items ...T) {
	for _, item := range items {
		s.items = append(s.items, stagedItem[T]{stage: stage, seq: len(s.items), value: item})
	}
	if !sort.SliceIsSorted(s.items, func(i, j int) bool { return s.items[i].stage < s.items[j].stage }) {
		sort.SliceStable(s.items, func(i, j int) bool { return s.items[i].stage < s.items[j].stage })
	}
}

// Ordered returns the items in canonical (stage ascending, then insertion
// order) sequence.
func (s *StagedArray[T]) Ordered() []T {
	if s == nil || len(s.items) == 0 {
		return nil
	}
	out := make([]T, len(s.items))
	for i, it := range s.items {
		out[i] = it.value
	}
	return out
}

// Len reports the number of items currently held.
func (s *StagedArray[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether the array holds no items.
func (s *StagedArray[T]) IsEmpty() bool {
	return s.Len() == 0
}

// MergeStaged stably merges any number of StagedArrays by stage only: when
// items from different arrays share a stage, all items from the
// earlier-indexed array come first; within a single array, insertion order
// is preserved. Nil or empty arrays contribute nothing.
func MergeStaged[T any](arrays ...*StagedArray[T]) []T {
	type tagged struct {
		stage  int
		source int
		seq    int
		value  T
	}

	var all []tagged
	for srcIdx, arr := range arrays {
		if arr == nil {
			continue
		}
		for _, it := range arr.items {
			all = append(all, tagged{stage: it.stage, source: srcIdx, seq: it.seq, value: it.value})
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].stage != all[j].stage {
			return all[i].stage < all[j].stage
		}
		if all[i].source != all[j].source {
			return all[i].source < all[j].source
		}
		return all[i].seq < all[j].seq
	})

	out := make([]T, len(all))
	for i, t := range all {
		out[i] = t.value
	}
	return out
}
