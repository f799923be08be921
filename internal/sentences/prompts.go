package sentences

import "fmt"

const meaningSystemPrompt = "You are a translation assistant. " +
	"Translate the given French word into English. " +
	"Output only in the format: 'Word: <French word> | Meaning: <English>'."

// BuildMeaningPrompts asks for the English meaning of word in the strict
// "Word: ... | Meaning: ..." format.
func BuildMeaningPrompts(word string) (system, prompt string) {
	return meaningSystemPrompt, fmt.Sprintf("Translate this French word into English: %s", word)
}

const sentencesSystemPrompt = "You are a bilingual assistant. " +
	"Create French learning material. " +
	"No commentary, no notes, only the requested format."

// BuildSentencesPrompts asks for exactly ten numbered example sentences
// at the given CEFR level, each followed by its English translation.
func BuildSentencesPrompts(word, level string) (system, prompt string) {
	prompt = fmt.Sprintf("Niveau CECR : %s\n\n"+
		"Word: %s\n"+
		"Task: Write exactly 10 sentences using '%s'.\n"+
		"Each sentence must be %s level French, followed immediately by its English translation.\n"+
		"Format:\n"+
		"1. <French sentence>\n"+
		"   <English translation>\n"+
		"2. <French sentence>\n"+
		"   <English translation>\n"+
		"... up to 10.\n"+
		"- Never write 'Sentence 1:'. Only use the number and a period.\n",
		level, word, word, level)
	return sentencesSystemPrompt, prompt
}
