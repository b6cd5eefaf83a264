package config

// DefaultSubstances returns the suggested substance names offered by the
// entry commands. The set is open: free text is always accepted too.
func DefaultSubstances() []string {
	return []string{
		"Caffeine",
		"Alcohol",
		"Nicotine",
		"Cannabis",
		"MDMA",
		"Psilocybin",
		"LSD",
		"Ketamine",
	}
}

// DefaultFeelings returns the suggested feeling tags.
func DefaultFeelings() []string {
	return []string{
		"relaxed",
		"euphoric",
		"focused",
		"creative",
		"social",
		"talkative",
		"energetic",
		"calm",
		"sleepy",
		"anxious",
		"restless",
		"irritable",
		"dizzy",
		"nauseous",
	}
}

// DefaultDosages returns the suggested dosage labels per substance. The
// descriptions are journaling aids, not dosing guidance.
func DefaultDosages() map[string][]DosageOption {
	return map[string][]DosageOption{
		"Caffeine": {
			{Label: "50mg", Description: "small cup or green tea"},
			{Label: "100mg", Description: "cup of filter coffee"},
			{Label: "200mg", Description: "large coffee or energy drink"},
		},
		"Alcohol": {
			{Label: "one beer", Description: "330ml at ~5%"},
			{Label: "glass of wine", Description: "150ml at ~12%"},
			{Label: "shot", Description: "40ml spirit"},
		},
		"Nicotine": {
			{Label: "cigarette", Description: "one cigarette"},
			{Label: "vape session", Description: "a few puffs on a vape"},
		},
		"Cannabis": {
			{Label: "puff", Description: "single inhalation"},
			{Label: "joint", Description: "a full joint"},
			{Label: "edible 5mg", Description: "5mg THC edible"},
		},
		"Psilocybin": {
			{Label: "1g", Description: "light dose, dried"},
			{Label: "2.5g", Description: "moderate dose, dried"},
		},
	}
}

// DefaultWeights returns the relative charting magnitude per known dosage
// label. Labels missing here fall back to numeric parsing, then to 1 (see
// the aggregation engine). The values are relative units for trend charts,
// not pharmacological equivalences.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		// Caffeine
		"50mg":  0.5,
		"100mg": 1,
		"200mg": 2,
		// Alcohol
		"one beer":      1,
		"glass of wine": 1,
		"shot":          1,
		// Nicotine
		"cigarette":    1,
		"vape session": 0.5,
		// Cannabis
		"puff":       0.5,
		"joint":      2,
		"edible 5mg": 1.5,
		// Psilocybin
		"1g":   1,
		"2.5g": 2.5,
	}
}
