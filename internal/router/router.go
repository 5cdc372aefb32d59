// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package router classifies a query into the intent that steers evidence
// gathering.
package router

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// routerPromptTmpl asks the model for exactly one category name.
var routerPromptTmpl = template.Must(template.New("router").Parse(`You are a master query router. Your job is to classify the user's query into one of the following categories:
- 'academic_research': For queries related to scientific papers, technical concepts, algorithms, or academic topics.
- 'code_search': For queries asking about the user's local codebase, how to implement something, or code examples.
- 'general_search': For all other queries (news, opinions, general knowledge).

Analyze the following query and respond with *only* the category name and nothing else.

Query: "{{.Query}}"
`))

// Classify maps a query to an Intent by prompting the model at zero
// temperature and testing the response for category names by substring.
// The checks run in priority order so that when the model's free text
// mentions several categories, the narrowest one wins over the catch-all.
// Any model failure degrades to general_search; Classify never fails.
func Classify(ctx context.Context, client llm.Client, query string) types.Intent {
	var buf bytes.Buffer
	if err := routerPromptTmpl.Execute(&buf, struct{ Query string }{Query: query}); err != nil {
		return types.IntentGeneral
	}

	decision := client.Complete(ctx, buf.String(), 0)
	if llm.IsSentinel(decision) {
		return types.IntentGeneral
	}

	switch {
	case strings.Contains(decision, string(types.IntentAcademic)):
		return types.IntentAcademic
	case strings.Contains(decision, string(types.IntentCode)):
		return types.IntentCode
	default:
		return types.IntentGeneral
	}
}
