// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package qa answers follow-up questions strictly from a finalized report.
package qa

import (
	"bytes"
	"context"
	"text/template"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
)

// qaPromptTmpl grounds the answer in the report text alone.
var qaPromptTmpl = template.Must(template.New("qa").Parse(`You are a helpful QA Bot. You will be given a Report and a User's Question about that report.
Answer the user's question *only* using information found in the report.
If the answer is not in the report, say so.

Report:
{{.Report}}

User Question:
{{.Question}}

Answer:
`))

// Answer responds to one follow-up question using only the report's content.
// Stateless per call; session history is caller-managed. Runs at zero
// temperature. A model failure surfaces as the sentinel text.
func Answer(ctx context.Context, client llm.Client, report, question string) string {
	var buf bytes.Buffer
	if err := qaPromptTmpl.Execute(&buf, struct{ Report, Question string }{
		Report:   report,
		Question: question,
	}); err != nil {
		return llm.ErrorSentinel
	}
	return client.Complete(ctx, buf.String(), 0)
}
