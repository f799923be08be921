package words

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordToken accepts a single French token: a leading letter (including
// the extended Latin accented range) followed by letters, apostrophes
// or hyphens. Numbered lines, punctuation-led lines and multi-word
// phrases all fail the match.
var wordToken = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿœŒçÇ][A-Za-zÀ-ÖØ-öø-ÿœŒçÇ'-]*$`)

// allowedPhrase is the one multi-word article accepted verbatim.
const allowedPhrase = "de la"

var frenchLower = cases.Lower(language.French)

func normalizeLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "’", "'")
}

// DedupeKey folds a token for duplicate detection. Keys are
// case-insensitive under French casing rules, so "CHAT" and "chat"
// collapse to the same entry.
func DedupeKey(w string) string {
	return frenchLower.String(w)
}

// Extract filters raw model output into an ordered list of accepted
// tokens. It keeps single French words (l'eau, aujourd'hui, porte-clé)
// plus the "de la" article phrase, and drops everything else:
// numbering, translations, explanations, other multi-word lines.
// Duplicates are removed preserving first-seen order. Pure function.
func Extract(raw string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})

	for _, line := range strings.Split(raw, "\n") {
		line = normalizeLine(line)
		if line == "" {
			continue
		}
		if !strings.EqualFold(line, allowedPhrase) && !wordToken.MatchString(line) {
			continue
		}
		key := DedupeKey(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
	}
	return out
}
