package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/doselog",
			SQLiteFile: "doselog.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Report: ReportConfig{
			Days:    30,
			OutDir:  ".",
			Tracked: []string{},
		},
		Suggestions: SuggestionsConfig{
			Substances: DefaultSubstances(),
			Feelings:   DefaultFeelings(),
		},
		Dosages: DefaultDosages(),
		Weights: DefaultWeights(),
	}
}
