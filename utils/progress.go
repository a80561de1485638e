package utils

import (
	"math"
	"sort"
)

// Progress helpers for enrollment completed-module sets. A completed set is
// a slice of module positions, always kept sorted ascending without
// duplicates. All functions are pure; the enrollment controller is the only
// caller that persists their results.

// ToggleModule returns the completed set with index added (done) or removed
// (not done), normalized to a sorted slice of unique values. Adding an index
// that is already present, or removing one that is absent, is a no-op.
func ToggleModule(completed []int, index int, done bool) []int {
	seen := make(map[int]bool, len(completed)+1)
	for _, i := range completed {
		seen[i] = true
	}

	if done {
		seen[index] = true
	} else {
		delete(seen, index)
	}

	result := make([]int, 0, len(seen))
	for i := range seen {
		result = append(result, i)
	}
	sort.Ints(result)

	return result
}

// ProgressPercent computes the completion percentage for completedCount out
// of moduleCount modules, rounded to the nearest integer. A course with no
// modules reports zero progress.
func ProgressPercent(completedCount, moduleCount int) int {
	if moduleCount <= 0 {
		return 0
	}
	return int(math.Round(float64(completedCount) / float64(moduleCount) * 100))
}

// NextUnlocked returns the lowest module index not yet completed. Modules at
// or before this index are accessible; everything after it stays locked.
// When every module is done it returns moduleCount.
func NextUnlocked(completed []int, moduleCount int) int {
	done := make(map[int]bool, len(completed))
	for _, i := range completed {
		done[i] = true
	}

	for i := 0; i < moduleCount; i++ {
		if !done[i] {
			return i
		}
	}
	return moduleCount
}

// IsCourseComplete reports whether every module index in [0, moduleCount)
// is present in the completed set
func IsCourseComplete(completed []int, moduleCount int) bool {
	return moduleCount > 0 && NextUnlocked(completed, moduleCount) == moduleCount
}
