package sozluk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_CharacterCapitalization(t *testing.T) {
	cases := []struct {
		given    string
		expected string
	}{
		{"a", "a"},
		{"A", "a"},
		{"!", "!"},
		{" ", " "},
		{"", ""},
		{"i", "i"},
		{"ı", "ı"},
		{"İ", "i"},
		{"I", "ı"},
		{"Ö", "ö"},
		{"Ü", "ü"},
		{"Ğ", "ğ"},
		{"Ş", "ş"},
		{"Ç", "ç"},
		{"ö", "ö"},
		{"ü", "ü"},
		{"ş", "ş"},
		{"ç", "ç"},
		{"ğ", "ğ"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Fold(tc.given), "Fold(%q)", tc.given)
	}
}

func TestFold_Idempotent(t *testing.T) {
	inputs := []string{"ISTANBUL", "İstanbul", "Diyarbakır", "hello WORLD", "ĞÜŞİÖÇI"}

	for _, input := range inputs {
		once := Fold(input)
		assert.Equal(t, once, Fold(once), "Fold(Fold(%q))", input)
	}
}
