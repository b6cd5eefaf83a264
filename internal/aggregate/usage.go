package aggregate

import (
	"fmt"
	"time"

	"github.com/runnerr0/doselog/internal/storage"
)

// dayKey is the bucket key format: one bucket per calendar day.
const dayKey = "2006-01-02"

// UsageSeries is the usage-over-time result: a contiguous sequence of
// calendar days, oldest to newest, and one value series per tracked
// substance, each value slice aligned with Days.
type UsageSeries struct {
	Days   []time.Time
	Series []SubstanceSeries
}

// SubstanceSeries holds one substance's per-day magnitude sums.
type SubstanceSeries struct {
	Substance string
	Values    []float64
}

// UsageOverTime buckets the entries of the tracked substances into one
// bucket per local calendar day over the last `days` days, ending today,
// and sums each entry's magnitude into the bucket matching its day. The
// calendar day of an entry is derived in now's location. Entries outside
// the window, with an untracked substance, or with a zero timestamp are
// skipped. This transform needs an explicit day count; there is no
// unbounded form.
func UsageOverTime(entries []storage.Entry, tracked []string, days int, weights map[string]float64, now time.Time) (*UsageSeries, error) {
	if days < 1 {
		return nil, fmt.Errorf("usage series needs a day count of at least 1, got %d", days)
	}

	loc := now.Location()
	today := midnight(now, loc)
	start := today.AddDate(0, 0, -(days - 1))

	buckets := make([]time.Time, days)
	dayIndex := make(map[string]int, days)
	for i := range buckets {
		d := start.AddDate(0, 0, i)
		buckets[i] = d
		dayIndex[d.Format(dayKey)] = i
	}

	series := make([]SubstanceSeries, 0, len(tracked))
	seriesIndex := make(map[string]int, len(tracked))
	for _, name := range tracked {
		if _, dup := seriesIndex[name]; dup {
			continue
		}
		seriesIndex[name] = len(series)
		series = append(series, SubstanceSeries{Substance: name, Values: make([]float64, days)})
	}

	for _, e := range entries {
		si, ok := seriesIndex[e.Substance]
		if !ok || e.Timestamp.IsZero() {
			continue
		}
		di, ok := dayIndex[e.Timestamp.In(loc).Format(dayKey)]
		if !ok {
			continue
		}
		m, _ := Magnitude(e.Dosage, weights)
		series[si].Values[di] += m
	}

	return &UsageSeries{Days: buckets, Series: series}, nil
}

// midnight truncates a time to the start of its calendar day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
