// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review judges whether a generated report answers the query, and
// carries rejection feedback back to the synthesizer.
package review

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// reviewPromptTmpl constrains the model to two textual forms, which is what
// makes the crude substring verdict test below workable.
var reviewPromptTmpl = template.Must(template.New("review").Parse(`You are a "Supervisor" agent. You must review a User Query and the Generated Report to ensure it is complete and accurate.
- If the report is good, respond with "Yes."
- If the report is bad or incomplete, respond with "No. [Your concise feedback on what is missing or wrong]."

User Query: "{{.Query}}"

Generated Report:
"{{.Report}}"

Your Assessment:
`))

// rejectionMarker is the negative-verdict substring. The verdict is rejected
// iff the lowercased response contains it.
const rejectionMarker = "no."

// ParseVerdict derives the verdict from the reviewer's raw response. The
// rationale is the text following the first marker occurrence, trimmed.
func ParseVerdict(raw string) types.Verdict {
	lower := strings.ToLower(raw)
	idx := strings.Index(lower, rejectionMarker)
	if idx < 0 {
		return types.Verdict{Accepted: true}
	}
	return types.Verdict{
		Accepted: false,
		Message:  strings.TrimSpace(raw[idx+len(rejectionMarker):]),
	}
}

// Review prompts the model at zero temperature and parses the verdict. A
// model failure degrades to acceptance: a lost review must not trigger a
// revision of a possibly fine report.
func Review(ctx context.Context, client llm.Client, query, report string) types.Verdict {
	var buf bytes.Buffer
	if err := reviewPromptTmpl.Execute(&buf, struct{ Query, Report string }{
		Query:  query,
		Report: report,
	}); err != nil {
		return types.Verdict{Accepted: true}
	}

	response := client.Complete(ctx, buf.String(), 0)
	if llm.IsSentinel(response) {
		return types.Verdict{Accepted: true}
	}
	return ParseVerdict(response)
}
