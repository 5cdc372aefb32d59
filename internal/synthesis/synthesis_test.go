// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"context"
	"strings"
	"testing"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

type scriptedClient struct {
	response  string
	gotPrompt string
	gotTemp   float32
}

func (c *scriptedClient) Complete(_ context.Context, prompt string, temperature float32) string {
	c.gotPrompt = prompt
	c.gotTemp = temperature
	return c.response
}

// --- FormatEvidence ---

func TestFormatEvidenceBindsTokensToOrdinalPositions(t *testing.T) {
	// Items keep their original (pre-filter) indices 2 and 5; tokens must be
	// renumbered 1 and 2 from the filtered list's ordinal positions.
	filtered := []types.EvidenceItem{
		{Index: 2, Title: "Paper B", Snippet: "beta facts", SourceURL: "https://b"},
		{Index: 5, Title: "Paper E", Snippet: "epsilon facts", SourceURL: "https://e"},
	}

	contextStr, sources := FormatEvidence(filtered)

	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}
	if ref, ok := sources["[Source 1]"]; !ok || ref.URL != "https://b" || ref.Title != "Paper B" {
		t.Errorf(`sources["[Source 1]"] = %+v, ok=%v`, ref, ok)
	}
	if ref, ok := sources["[Source 2]"]; !ok || ref.URL != "https://e" {
		t.Errorf(`sources["[Source 2]"] = %+v, ok=%v`, ref, ok)
	}
	if _, ok := sources["[Source 5]"]; ok {
		t.Error("source map keyed by original index, want ordinal position")
	}

	if !strings.Contains(contextStr, "Snippet: beta facts\n[Source 1]") {
		t.Errorf("context missing renumbered first snippet:\n%s", contextStr)
	}
	if !strings.Contains(contextStr, "Snippet: epsilon facts\n[Source 2]") {
		t.Errorf("context missing renumbered second snippet:\n%s", contextStr)
	}
}

func TestFormatEvidenceEmpty(t *testing.T) {
	contextStr, sources := FormatEvidence(nil)
	if contextStr != NoEvidenceContext {
		t.Errorf("context = %q, want %q", contextStr, NoEvidenceContext)
	}
	if len(sources) != 0 {
		t.Errorf("sources = %v, want empty", sources)
	}
}

// --- Synthesize ---

func TestSynthesizePromptAssembly(t *testing.T) {
	c := &scriptedClient{response: "the report"}
	got := Synthesize(context.Background(), c, "explain attention",
		"Snippet: facts\n[Source 1]\n", "File: model.py\n\ndef f(): ...", "", 0.1)

	if got != "the report" {
		t.Errorf("Synthesize() = %q", got)
	}
	if c.gotTemp != 0.1 {
		t.Errorf("temperature = %v, want 0.1", c.gotTemp)
	}
	for _, want := range []string{
		`User Query: "explain attention"`,
		"Snippet: facts",
		"File: model.py",
	} {
		if !strings.Contains(c.gotPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(c.gotPrompt, "previous attempt failed") {
		t.Error("first attempt prompt contains a feedback block")
	}
}

func TestSynthesizeWithFeedback(t *testing.T) {
	c := &scriptedClient{response: "the improved report"}
	Synthesize(context.Background(), c, "q", "ctx", "code", "Missing citations for claim X", 0.1)

	if !strings.Contains(c.gotPrompt, `"Missing citations for claim X"`) {
		t.Errorf("prompt missing verbatim feedback:\n%s", c.gotPrompt)
	}
	if !strings.Contains(c.gotPrompt, "previous attempt failed") {
		t.Error("prompt missing the revision instruction")
	}
}

// --- Render ---

func TestRenderSubstitutesKnownTokens(t *testing.T) {
	sources := types.SourceMap{
		"[Source 1]": {URL: "https://a", Title: "A"},
		"[Source 2]": {URL: "https://b", Title: "B"},
	}
	report := "Attention scales well [Source 1]. It parallelizes [Source 2]."

	got := Render(report, sources)
	want := "Attention scales well [Source 1](https://a). It parallelizes [Source 2](https://b)."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderPassesUnknownTokensThrough(t *testing.T) {
	sources := types.SourceMap{"[Source 1]": {URL: "https://a", Title: "A"}}
	report := "Claim [Source 1] and hallucinated [Source 9]."

	got := Render(report, sources)
	if !strings.Contains(got, "[Source 9].") {
		t.Errorf("unknown token modified: %q", got)
	}
	if !strings.Contains(got, "[Source 1](https://a)") {
		t.Errorf("known token not substituted: %q", got)
	}
}

func TestRenderNoSources(t *testing.T) {
	report := "No citations here."
	if got := Render(report, nil); got != report {
		t.Errorf("Render() = %q, want unchanged", got)
	}
}

func TestCitationToken(t *testing.T) {
	if got := CitationToken(3); got != "[Source 3]" {
		t.Errorf("CitationToken(3) = %q", got)
	}
}
