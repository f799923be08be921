package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_SingleTokenGrammar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "plain word", in: "chat", want: []string{"chat"}},
		{name: "accented word", in: "été", want: []string{"été"}},
		{name: "cedilla", in: "ça", want: []string{"ça"}},
		{name: "oe ligature", in: "œuf", want: []string{"œuf"}},
		{name: "apostrophe contraction", in: "l'eau", want: []string{"l'eau"}},
		{name: "curly apostrophe normalized", in: "aujourd’hui", want: []string{"aujourd'hui"}},
		{name: "hyphenated compound", in: "porte-clé", want: []string{"porte-clé"}},
		{name: "allowed article phrase", in: "de la", want: []string{"de la"}},
		{name: "allowed phrase case-insensitive", in: "De La", want: []string{"De La"}},
		{name: "surrounding whitespace trimmed", in: "  chien  ", want: []string{"chien"}},
		{name: "numbered line rejected", in: "1. chien", want: []string{}},
		{name: "leading punctuation rejected", in: "- chien", want: []string{}},
		{name: "multi-word phrase rejected", in: "le petit chat", want: []string{}},
		{name: "translation text rejected", in: "chat (cat)", want: []string{}},
		{name: "digit rejected", in: "42", want: []string{}},
		{name: "blank lines skipped", in: "\n\n  \n", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in))
		})
	}
}

func TestExtract_DeduplicatesCaseInsensitively(t *testing.T) {
	// Duplicate keys fold case under French rules: the second "CHAT" is
	// dropped, first-seen order is preserved.
	got := Extract("chat\nCHAT\n1. chien\nde la\nbonjour!")
	assert.Equal(t, []string{"chat", "de la"}, got)
}

func TestExtract_PreservesFirstSeenOrder(t *testing.T) {
	got := Extract("zèbre\nabeille\nzèbre\nmaison")
	assert.Equal(t, []string{"zèbre", "abeille", "maison"}, got)
}

func TestExtract_IsPure(t *testing.T) {
	in := "chat\nchien\nchat"
	first := Extract(in)
	second := Extract(in)
	assert.Equal(t, first, second)
}

func TestDedupeKey_FoldsAccentedUppercase(t *testing.T) {
	assert.Equal(t, DedupeKey("été"), DedupeKey("ÉTÉ"))
	assert.NotEqual(t, DedupeKey("été"), DedupeKey("etat"))
}
