package query_test

import (
	"testing"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/query"
	"github.com/m-mizutani/gt"
)

func TestBuildPromptFormat(t *testing.T) {
	prompt := query.BuildPrompt([]string{"ctx one", "ctx two"}, "what is this?", "English")

	want := "Answer the question based on the context below with English:\n\n" +
		" ctx one\nctx two " +
		"\n\nQuestion: what is this? \n\nAnswer:"
	gt.Equal(t, prompt, want)
}

func TestBuildPromptDeterministic(t *testing.T) {
	fragments := []string{"alpha", "beta", "gamma"}
	first := query.BuildPrompt(fragments, "q", "French")
	for range 10 {
		gt.Equal(t, query.BuildPrompt(fragments, "q", "French"), first)
	}
}

func TestBuildPromptKeepsRankOrder(t *testing.T) {
	prompt := query.BuildPrompt([]string{"best", "second"}, "q", "English")
	gt.S(t, prompt).Contains("best\nsecond")
}

func TestBuildPromptNoDeduplication(t *testing.T) {
	prompt := query.BuildPrompt([]string{"same", "same"}, "q", "English")
	gt.S(t, prompt).Contains("same\nsame")
}
