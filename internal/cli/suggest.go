package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/runnerr0/doselog/internal/config"
)

// Execute implements the go-flags Commander interface for SuggestCommand.
func (c *SuggestCommand) Execute(args []string) error {
	cfg, err := c.globals.loadConfig()
	if err != nil {
		return err
	}

	return c.executeWithConfig(cfg)
}

// executeWithConfig prints the suggestion tables from a provided config
// (for testing).
func (c *SuggestCommand) executeWithConfig(cfg *config.Config) error {
	if c.globals.JSON {
		return c.printJSON(cfg)
	}
	return c.printHuman(cfg)
}

// dosageSubstances returns the substances carrying dosage options in a
// deterministic order: the suggestion list first, any extra keys sorted.
func dosageSubstances(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Dosages))
	seen := make(map[string]bool, len(cfg.Dosages))
	for _, s := range cfg.Suggestions.Substances {
		if _, ok := cfg.Dosages[s]; ok && !seen[s] {
			names = append(names, s)
			seen[s] = true
		}
	}

	extras := make([]string, 0)
	for s := range cfg.Dosages {
		if !seen[s] {
			extras = append(extras, s)
		}
	}
	sort.Strings(extras)

	return append(names, extras...)
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func (c *SuggestCommand) printHuman(cfg *config.Config) error {
	fmt.Println("Substances:")
	for _, s := range cfg.Suggestions.Substances {
		fmt.Printf("  %s\n", s)
	}

	fmt.Println()
	fmt.Println("Feelings:")
	fmt.Printf("  %s\n", strings.Join(cfg.Suggestions.Feelings, ", "))

	fmt.Println()
	fmt.Println("Dosages:")
	for _, name := range dosageSubstances(cfg) {
		fmt.Printf("  %s:\n", name)
		for _, opt := range cfg.Dosages[name] {
			line := fmt.Sprintf("    %-16s %s", opt.Label, opt.Description)
			if w, ok := cfg.Weights[opt.Label]; ok {
				line += fmt.Sprintf("  [weight %s]", formatWeight(w))
			}
			fmt.Println(strings.TrimRight(line, " "))
		}
	}

	return nil
}

type dosageJSON struct {
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
}

type suggestJSON struct {
	Substances []string                `json:"substances"`
	Feelings   []string                `json:"feelings"`
	Dosages    map[string][]dosageJSON `json:"dosages"`
}

func (c *SuggestCommand) printJSON(cfg *config.Config) error {
	out := suggestJSON{
		Substances: cfg.Suggestions.Substances,
		Feelings:   cfg.Suggestions.Feelings,
		Dosages:    make(map[string][]dosageJSON, len(cfg.Dosages)),
	}

	for name, opts := range cfg.Dosages {
		list := make([]dosageJSON, len(opts))
		for i, opt := range opts {
			list[i] = dosageJSON{Label: opt.Label, Description: opt.Description}
			if w, ok := cfg.Weights[opt.Label]; ok {
				weight := w
				list[i].Weight = &weight
			}
		}
		out.Dosages[name] = list
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
