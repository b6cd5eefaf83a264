package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/doselog/internal/aggregate"
	"github.com/runnerr0/doselog/internal/chart"
	"github.com/runnerr0/doselog/internal/config"
	"github.com/runnerr0/doselog/internal/storage"
)

// Chart surface sizes. The feelings chart is taller since horizontal bars
// stack vertically.
var (
	usageSize     = chart.Size{Width: 800, Height: 320}
	frequencySize = chart.Size{Width: 640, Height: 320}
	feelingsSize  = chart.Size{Width: 640, Height: 400}
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	store, cfg, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store, cfg)
}

// executeWithStore runs the report against a provided store and config
// (for testing). The three aggregations run concurrently, then the three
// charts are rendered and written concurrently.
func (c *ReportCommand) executeWithStore(store storage.Store, cfg *config.Config) error {
	days := c.Days
	if days < 1 {
		days = cfg.Report.Days
	}
	outDir := c.OutDir
	if outDir == "" {
		outDir = cfg.Report.OutDir
	}

	// The count charts honor --all-time; the usage series always needs its
	// bounded day window.
	window := aggregate.LastDays(days)
	if c.AllTime {
		window = aggregate.AllTime()
	}

	ctx := context.Background()
	entries, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	now := time.Now()
	tracked := cfg.TrackedSubstances()

	var (
		usage     *aggregate.UsageSeries
		frequency []aggregate.Count
		feelings  []aggregate.Count
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		usage, err = aggregate.UsageOverTime(entries, tracked, days, cfg.Weights, now)
		if err != nil {
			return fmt.Errorf("usage series: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		frequency = aggregate.FrequencyBySubstance(entries, window, now)
		return nil
	})

	g.Go(func() error {
		feelings = aggregate.FeelingCounts(entries, window, c.Substance, now)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if c.globals.JSON {
		return c.printJSON(days, window, usage, frequency, feelings)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g2, _ := errgroup.WithContext(ctx)

	g2.Go(func() error {
		return writeChart(filepath.Join(outDir, "usage.svg"), func(w io.Writer) {
			chart.RenderLine(w, usageLayout(usage))
		})
	})

	g2.Go(func() error {
		return writeChart(filepath.Join(outDir, "frequency.svg"), func(w io.Writer) {
			chart.RenderBars(w, chart.LayoutBars(countValues(frequency), frequencySize))
		})
	})

	g2.Go(func() error {
		return writeChart(filepath.Join(outDir, "feelings.svg"), func(w io.Writer) {
			chart.RenderHBars(w, chart.LayoutHBars(countValues(feelings), feelingsSize))
		})
	})

	if err := g2.Wait(); err != nil {
		return err
	}

	slog.Debug("report rendered",
		slog.String("dir", outDir), slog.Int("entries", len(entries)))

	fmt.Printf("Wrote 3 charts to %s\n", outDir)
	fmt.Printf("  usage.svg      (%s)\n", aggregate.LastDays(days))
	fmt.Printf("  frequency.svg  (%s)\n", window)
	if c.Substance != "" {
		fmt.Printf("  feelings.svg   (%s, %s only)\n", window, c.Substance)
	} else {
		fmt.Printf("  feelings.svg   (%s)\n", window)
	}
	return nil
}

// usageLayout adapts the usage series to the line chart input.
func usageLayout(u *aggregate.UsageSeries) chart.LineLayout {
	series := make([]chart.Series, len(u.Series))
	for i, s := range u.Series {
		series[i] = chart.Series{Label: s.Substance, Values: s.Values}
	}
	labels := make([]string, len(u.Days))
	for i, d := range u.Days {
		labels[i] = d.Format("01-02")
	}
	return chart.LayoutLine(series, labels, usageSize)
}

// countValues adapts count pairs to bar chart input.
func countValues(counts []aggregate.Count) []chart.Value {
	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		values[i] = chart.Value{Label: c.Label, Value: float64(c.N)}
	}
	return values
}

// writeChart renders into a buffer first so a render never leaves a
// half-written file behind.
func writeChart(path string, render func(w io.Writer)) error {
	var buf bytes.Buffer
	render(&buf)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

type usageSeriesJSON struct {
	Substance string    `json:"substance"`
	Values    []float64 `json:"values"`
}

type countJSON struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type reportJSON struct {
	Days      int               `json:"days"`
	Window    string            `json:"window"`
	Substance string            `json:"substance,omitempty"`
	UsageDays []string          `json:"usage_days"`
	Usage     []usageSeriesJSON `json:"usage"`
	Frequency []countJSON       `json:"frequency"`
	Feelings  []countJSON       `json:"feelings"`
}

func (c *ReportCommand) printJSON(days int, window aggregate.Window, usage *aggregate.UsageSeries, frequency, feelings []aggregate.Count) error {
	out := reportJSON{
		Days:      days,
		Window:    window.String(),
		Substance: c.Substance,
		UsageDays: make([]string, len(usage.Days)),
		Usage:     make([]usageSeriesJSON, len(usage.Series)),
		Frequency: toCountJSON(frequency),
		Feelings:  toCountJSON(feelings),
	}

	for i, d := range usage.Days {
		out.UsageDays[i] = d.Format("2006-01-02")
	}
	for i, s := range usage.Series {
		out.Usage[i] = usageSeriesJSON{Substance: s.Substance, Values: s.Values}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toCountJSON(counts []aggregate.Count) []countJSON {
	out := make([]countJSON, len(counts))
	for i, c := range counts {
		out[i] = countJSON{Label: c.Label, Count: c.N}
	}
	return out
}
