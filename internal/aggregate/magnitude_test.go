package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testWeights = map[string]float64{
	"100mg":    1,
	"one beer": 1,
	"joint":    2,
	"5mg":      5,
}

func TestMagnitude_WeightTableWins(t *testing.T) {
	v, tier := Magnitude("one beer", testWeights)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, TierWeight, tier)

	// An exact match beats the numeric prefix: "100mg" charts as its
	// configured weight 1, not as 100.
	v, tier = Magnitude("100mg", testWeights)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, TierWeight, tier)
}

func TestMagnitude_NumericPrefix(t *testing.T) {
	cases := []struct {
		dosage string
		want   float64
	}{
		{"250mg", 250},
		{"7.5mg", 7.5},
		{"2 pills", 2},
		{".5g", 0.5},
		{"  3 cups", 3},
		{"40ml", 40},
	}
	for _, tc := range cases {
		v, tier := Magnitude(tc.dosage, testWeights)
		assert.Equal(t, tc.want, v, "dosage %q", tc.dosage)
		assert.Equal(t, TierNumeric, tier, "dosage %q", tc.dosage)
	}
}

func TestMagnitude_DefaultIsOneUnit(t *testing.T) {
	for _, dosage := range []string{"", "a splash", "half", "some", "n/a"} {
		v, tier := Magnitude(dosage, testWeights)
		assert.Equal(t, 1.0, v, "dosage %q", dosage)
		assert.Equal(t, TierDefault, tier, "dosage %q", dosage)
	}
}

func TestMagnitude_NilWeightTable(t *testing.T) {
	v, tier := Magnitude("3mg", nil)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, TierNumeric, tier)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "weight", TierWeight.String())
	assert.Equal(t, "numeric", TierNumeric.String())
	assert.Equal(t, "default", TierDefault.String())
}
