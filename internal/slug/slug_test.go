// internal/slug/slug_test.go
package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Kaos Promo", "kaos-promo"},
		{"punctuation stripped", "Banner X-Stand 60x160cm!!", "banner-x-stand-60x160cm"},
		{"whitespace runs collapse", "Mug   Custom  Sablon", "mug-custom-sablon"},
		{"hyphen runs collapse", "Promo -- Akhir -- Tahun", "promo-akhir-tahun"},
		{"leading trailing trimmed", "  -Paket Hemat-  ", "paket-hemat"},
		{"only stripped characters", "  ***  ", ""},
		{"empty input", "", ""},
		{"digits kept", "Spanduk 3x1", "spanduk-3x1"},
		{"unicode stripped", "Kaos Promo™ — Edisi", "kaos-promo-edisi"},
		{"already a slug", "banner-x-stand-60x160cm", "banner-x-stand-60x160cm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.in))
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	inputs := []string{
		"Kaos Promo",
		"Banner X-Stand 60x160cm!!",
		"  ***  ",
		"A  --  B",
		"Stiker Vinyl A3+",
	}

	for _, in := range inputs {
		once := Derive(in)
		assert.Equal(t, once, Derive(once), "Derive must be idempotent for %q", in)
	}
}

func TestDeriveAlphabet(t *testing.T) {
	inputs := []string{
		"Kaos Promo 2024!",
		"Ünïcode Náme",
		"tab\tand\nnewline",
		"UPPER lower 123 ---",
	}

	for _, in := range inputs {
		for _, r := range Derive(in) {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, valid, "unexpected rune %q in slug for %q", r, in)
		}
	}
}
