package words

import (
	"fmt"
	"strings"
)

// blacklistTail bounds how much of the running produced list rides along
// in each prompt to discourage repeats.
const blacklistTail = 200

const batchSystemPrompt = "Tu renvoies UNIQUEMENT des mots français isolés, un par ligne.\n" +
	"- Autorisé: articles (le, la, l', un, une, des, du, de, «de la»).\n" +
	"- Interdit: numérotation, traduction, phrases, explications.\n" +
	"- Pas de doublons."

// BuildBatchPrompts builds the system instruction and prompt asking for
// want words at the given level, excluding the tail of already produced
// words.
func BuildBatchPrompts(level string, want int, produced []string) (system, prompt string) {
	blacklist := "—"
	if len(produced) > 0 {
		tail := produced
		if len(tail) > blacklistTail {
			tail = tail[len(tail)-blacklistTail:]
		}
		blacklist = strings.Join(tail, ", ")
	}

	prompt = fmt.Sprintf("Donne exactement %d mots français de niveau %s.\n"+
		"Ne répète AUCUN des mots déjà produits: %s\n"+
		"Un mot par ligne. Rien d'autre.", want, level, blacklist)
	return batchSystemPrompt, prompt
}
