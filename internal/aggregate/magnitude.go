package aggregate

import "strconv"

// Tier identifies which rule of the magnitude fallback chain resolved a
// dosage string. Exposed so callers can see how a value was derived.
type Tier int

const (
	// TierWeight means the dosage text matched the weight table exactly.
	TierWeight Tier = iota
	// TierNumeric means a leading decimal number was parsed from the text.
	TierNumeric
	// TierDefault means neither rule applied; the entry counts as one
	// unit of activity.
	TierDefault
)

func (t Tier) String() string {
	switch t {
	case TierWeight:
		return "weight"
	case TierNumeric:
		return "numeric"
	default:
		return "default"
	}
}

// Magnitude resolves a dosage string to its charting weight. The fallback
// chain is fixed: an exact match against the weight table wins; otherwise
// the numeric prefix of the text is used ("7.5mg" charts as 7.5); otherwise
// the entry still registers as one unit rather than vanishing from the
// chart.
func Magnitude(dosage string, weights map[string]float64) (float64, Tier) {
	if w, ok := weights[dosage]; ok {
		return w, TierWeight
	}
	if v, ok := leadingNumber(dosage); ok {
		return v, TierNumeric
	}
	return 1, TierDefault
}

// leadingNumber parses the numeric prefix of a string: optional sign,
// digits, optional decimal fraction. Text after the prefix is ignored, so
// "2 pills" parses as 2 and ".5g" as 0.5.
func leadingNumber(s string) (float64, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	intDigits := i - intStart

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		fracDigits = i - fracStart
	}

	if intDigits == 0 && fracDigits == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
