package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBusinessName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"legal suffix unified", "MATERIALES DE CONSTRUCCION SORIA S.L.", "materiales de construccion soria sl"},
		{"slu variant unified", "Distribuciones Garcia S.L.U.", "distribuidor garcia sl"},
		{"trade synonym collapsed", "Almacenes Perez, S.A.", "materiales perez sa"},
		{"accents stripped", "Construcción Ibáñez S.L", "construccion ibanez sl"},
		{"commas removed", "Suministros Lopez, S.L.", "materiales lopez sl"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeBusinessName(tt.input))
		})
	}
}

func TestNormalizeBusinessName_Idempotent(t *testing.T) {
	inputs := []string{
		"Almacenes de Construcción Soria Gamma, S.L",
		"MATERIALES DE CONSTRUCCION SORIA S.L.",
		"Distribuciones Generalife Maracena, S.L.",
		"Comercial Núñez S.L.U.",
	}
	for _, in := range inputs {
		once := NormalizeBusinessName(in)
		assert.Equal(t, once, NormalizeBusinessName(once), "input %q", in)
	}
}

func TestNormalizePersonalName_OrderInvariant(t *testing.T) {
	assert.Equal(t,
		NormalizePersonalName("Maria Antonia Barroso"),
		NormalizePersonalName("Barroso Maria Antonia"))
	assert.Equal(t,
		NormalizePersonalName("Jose Luis Garcia"),
		NormalizePersonalName("Garcia Jose Luis"))
}

func TestNormalizePersonalName_GenderUnified(t *testing.T) {
	// Gendered variants collapse to the lexicographically smaller form.
	assert.Equal(t,
		NormalizePersonalName("Antonio Barroso"),
		NormalizePersonalName("Antonia Barroso"))
	assert.Equal(t, "antonia barroso maria", NormalizePersonalName("MARIA ANTONIO BARROSO"))
}

func TestNormalizePersonalName_Dedupes(t *testing.T) {
	assert.Equal(t, "garcia jose", NormalizePersonalName("Jose Garcia Jose"))
}

func TestIsPersonalName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		personal bool
	}{
		{"plain personal name", "Maria Antonia Barroso", true},
		{"legal suffix", "Materiales Soria S.L.", false},
		{"bare sl token", "Soria Hermanos SL", false},
		{"business keyword", "Suministros del Norte", false},
		{"more than six tokens", "uno dos tres cuatro cinco seis siete", false},
		{"two-token name", "Daniel Montesinos", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.personal, IsPersonalName(tt.input))
		})
	}
}

func TestBuyingGroupKeywords(t *testing.T) {
	assert.Equal(t, []string{"gamma"}, BuyingGroupKeywords("Almacenes Soria Gamma, S.L"))
	assert.Empty(t, BuyingGroupKeywords("Materiales Soria S.L."))
	// Whole-token match only; substrings do not count.
	assert.Empty(t, BuyingGroupKeywords("Gammaplast S.L."))
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "NUNEZ", RemoveAccents("NÚÑEZ"))
	assert.Equal(t, "construccion", RemoveAccents("construcción"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}
