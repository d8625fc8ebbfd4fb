package query

import (
	"fmt"
	"strings"
)

// responseLanguage names the language the model must answer in
const responseLanguage = "English"

// BuildPrompt renders the grounding prompt: an instruction line naming
// the answer language, the fragment texts in rank order, the restated
// question and an answer cue. Plain concatenation with no truncation
// and no deduplication, so the output is reproducible byte for byte.
func BuildPrompt(fragments []string, question, language string) string {
	promptStart := fmt.Sprintf("Answer the question based on the context below with %s:\n\n", language)
	promptEnd := fmt.Sprintf("\n\nQuestion: %s \n\nAnswer:", question)

	return promptStart + " " + strings.Join(fragments, "\n") + " " + promptEnd
}
