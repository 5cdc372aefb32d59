// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis turns filtered evidence and code context into a cited
// narrative report, and renders citation tokens into links.
package synthesis

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// NoEvidenceContext is the research context handed to the model when the
// filtered evidence list is empty.
const NoEvidenceContext = "No information found."

// synthesisPromptTmpl is the report-writing prompt. The citation contract
// (tag research-derived claims with their [Source X] token, reference code
// by file path phrase) is an instruction to the model, not enforced here;
// rendering tolerates violations.
var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(`You are an expert research assistant with two sources of information:
1.  **Public Research Context**: Snippets from various web/academic sources, each tagged with [Source X].
2.  **Private Code Context**: Snippets from the user's local codebase.

Your task is to write a comprehensive, synthesized answer to the user's query.

User Query: "{{.Query}}"

You **MUST** follow these rules:
1.  Base your answer *only* on the provided context. Do not use any prior knowledge.
2.  For any fact or statement taken from **Public Research**, you **MUST** cite it with the [Source X] tag.
3.  For any fact or statement taken from **Private Code Context**, refer to it as "in your local codebase" or by its file path.
4.  Structure the answer clearly. Start with a direct answer, then provide detailed explanations.
{{.FeedbackSection}}
Public Research Context:
{{.ResearchContext}}

Private Code Context:
{{.CodeContext}}

---
Final Report:
`))

// feedbackSectionTmpl is spliced into the synthesis prompt on the revision
// attempt, carrying the reviewer's rationale verbatim.
var feedbackSectionTmpl = template.Must(template.New("feedback").Parse(`
---
Your previous attempt failed. You received this feedback:
"{{.Feedback}}"
Please generate a new, improved report based on this feedback.
---
`))

// CitationToken returns the citation token for ordinal position n in the
// filtered evidence list. Token text must match SourceMap keys exactly.
func CitationToken(n int) string {
	return fmt.Sprintf("[Source %d]", n)
}

// FormatEvidence renders the filtered evidence into the research context
// string and builds the source map. Tokens are bound to ordinal positions in
// the filtered list, 1..M, not to the items' original indices: the model only
// ever sees the renumbered tokens, so its citations and the map agree.
func FormatEvidence(filtered []types.EvidenceItem) (string, types.SourceMap) {
	if len(filtered) == 0 {
		return NoEvidenceContext, types.SourceMap{}
	}

	var sb strings.Builder
	sources := make(types.SourceMap, len(filtered))
	for i, item := range filtered {
		token := CitationToken(i + 1)
		fmt.Fprintf(&sb, "Snippet: %s\n%s\n\n", item.Snippet, token)
		sources[token] = types.SourceRef{URL: item.SourceURL, Title: item.Title}
	}
	return sb.String(), sources
}

// Synthesize generates the report. A non-empty feedback string marks the
// revision attempt and is embedded verbatim in the prompt. The temperature is
// low but nonzero so phrasing can vary while staying close to deterministic.
//
// A model failure surfaces as the sentinel text in the returned report; the
// caller decides whether that is terminal.
func Synthesize(ctx context.Context, client llm.Client, query, researchContext, codeContext, feedback string, temperature float32) string {
	var feedbackSection string
	if feedback != "" {
		var fb bytes.Buffer
		if err := feedbackSectionTmpl.Execute(&fb, struct{ Feedback string }{Feedback: feedback}); err == nil {
			feedbackSection = fb.String()
		}
	}

	var buf bytes.Buffer
	err := synthesisPromptTmpl.Execute(&buf, struct {
		Query           string
		FeedbackSection string
		ResearchContext string
		CodeContext     string
	}{
		Query:           query,
		FeedbackSection: feedbackSection,
		ResearchContext: researchContext,
		CodeContext:     codeContext,
	})
	if err != nil {
		return llm.ErrorSentinel
	}

	return client.Complete(ctx, buf.String(), temperature)
}
