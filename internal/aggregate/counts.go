package aggregate

import (
	"sort"
	"time"

	"github.com/runnerr0/doselog/internal/storage"
)

// Count pairs a label with the number of times it occurred in the window.
type Count struct {
	Label string
	N     int
}

// FrequencyBySubstance counts entries per substance name within the
// window. The result is sorted by count descending, then label ascending,
// so chart input is deterministic.
func FrequencyBySubstance(entries []storage.Entry, w Window, now time.Time) []Count {
	counts := make(map[string]int)
	for _, e := range entries {
		if !w.Contains(e.Timestamp, now) {
			continue
		}
		counts[e.Substance]++
	}
	return sortCounts(counts)
}

// FeelingCounts counts each feeling tag's occurrences across entries
// within the window. A non-empty substance restricts the count to that
// substance's entries; entries without feelings contribute nothing. Same
// sort contract as FrequencyBySubstance.
func FeelingCounts(entries []storage.Entry, w Window, substance string, now time.Time) []Count {
	counts := make(map[string]int)
	for _, e := range entries {
		if !w.Contains(e.Timestamp, now) {
			continue
		}
		if substance != "" && e.Substance != substance {
			continue
		}
		for _, f := range e.Feelings {
			counts[f]++
		}
	}
	return sortCounts(counts)
}

// sortCounts flattens a count map into the deterministic slice order the
// charts rely on. Always returns an empty slice rather than nil.
func sortCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})
	return out
}
