package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "materiales soria", "materiales soria", 1.0},
		{"token order ignored", "soria materiales", "materiales soria", 1.0},
		{"subset scores full", "materiales de construccion soria", "materiales de construccion soria sl extra", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "materiales", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetRatio(tt.a, tt.b), 0.001)
		})
	}
}

func TestTokenSetRatio_Symmetric(t *testing.T) {
	a := "materiales de construccion soria gamma sl"
	b := "materiales de construccion lito sl"
	assert.InDelta(t, TokenSetRatio(a, b), TokenSetRatio(b, a), 0.0001)
}

func TestTokenSetRatio_PartialOverlap(t *testing.T) {
	got := TokenSetRatio("materiales soria", "materiales lito")
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}

func TestJaroWinkler(t *testing.T) {
	assert.InDelta(t, 1.0, JaroWinkler("soria", "soria", 0.15), 0.0001)
	assert.InDelta(t, 0.0, JaroWinkler("", "soria", 0.15), 0.0001)
	assert.InDelta(t, 0.0, JaroWinkler("abc", "xyz", 0.15), 0.0001)
}

func TestJaroWinkler_PrefixBonus(t *testing.T) {
	// Same Jaro similarity class, but the shared prefix lifts the
	// pair with matching leading characters.
	withPrefix := JaroWinkler("construccion", "construccio", 0.15)
	assert.Greater(t, withPrefix, 0.95)

	base := jaroSimilarity("construccion", "construccio")
	assert.Greater(t, withPrefix, base)
}

func TestJaroWinkler_NoBonusBelowGate(t *testing.T) {
	// Weak pairs get plain Jaro, no prefix inflation.
	a, b := "cadiz", "cortes del norte"
	jaro := jaroSimilarity(a, b)
	if jaro < 0.7 {
		assert.InDelta(t, jaro, JaroWinkler(a, b, 0.15), 0.0001)
	}
}
