// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package critic filters gathered evidence down to the items relevant to the
// query. Model output parsing is isolated in ParseSelection so the fail-open
// policy stays testable independently of model calls.
package critic

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// criticPromptTmpl asks the model for a bare comma-separated index list.
var criticPromptTmpl = template.Must(template.New("critic").Parse(`You are a meticulous research paper reviewer. You will be given a user's query and a list of numbered search result snippets.
Your task is to identify the snippets that are *most relevant* and *highest quality* for answering the query.

You must return a comma-separated list of the numbers of the *best* snippets. For example: "1, 3, 5".
Do not include any other text, explanation, or punctuation. If no snippets are relevant, return "None".

Query: {{.Query}}

Snippets:
{{.Snippets}}`))

// SelectionKind tags the outcome of parsing the critic's response.
type SelectionKind int

const (
	// SelectionKept means one or more indices were extracted.
	SelectionKept SelectionKind = iota

	// SelectionNone means the model rejected every snippet.
	SelectionNone

	// SelectionUnparsable means no indices could be extracted from a
	// response that was not the "none" token.
	SelectionUnparsable
)

// Selection is the parsed critic response.
type Selection struct {
	Kind    SelectionKind
	Indices []int
}

// ParseSelection extracts kept indices from the critic's raw response.
// Models do not reliably emit pure machine-parseable output, so the parser
// is lenient: every digit run in the text is treated as a candidate index,
// whatever punctuation or explanation surrounds it. A response equal to
// "none" (case-insensitive) rejects everything; a response with no digit
// runs at all is unparsable.
func ParseSelection(raw string) Selection {
	if strings.EqualFold(strings.TrimSpace(raw), "none") {
		return Selection{Kind: SelectionNone}
	}

	var indices []int
	var digits strings.Builder
	flush := func() {
		if digits.Len() == 0 {
			return
		}
		if n, err := strconv.Atoi(digits.String()); err == nil {
			indices = append(indices, n)
		}
		digits.Reset()
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	if len(indices) == 0 {
		return Selection{Kind: SelectionUnparsable}
	}
	return Selection{Kind: SelectionKept, Indices: indices}
}

// Filter prompts the model with the numbered snippets and returns the subset
// of evidence whose indices the model selected, along with a rationale for
// the caller's progress display.
//
// Policy: empty evidence short-circuits without a model call; a model failure
// or unparsable response fails open and returns the full evidence set, since
// a report built from excess context beats an empty report. Selected indices
// with no matching item are silently dropped.
func Filter(ctx context.Context, client llm.Client, query string, evidence []types.EvidenceItem) ([]types.EvidenceItem, string) {
	if len(evidence) == 0 {
		return nil, "no search results to critique"
	}

	var snippets strings.Builder
	for _, item := range evidence {
		fmt.Fprintf(&snippets, "[%d] %s\n\n", item.Index, item.Snippet)
	}

	var buf bytes.Buffer
	if err := criticPromptTmpl.Execute(&buf, struct{ Query, Snippets string }{
		Query:    query,
		Snippets: snippets.String(),
	}); err != nil {
		return evidence, "critic prompt failed, using all snippets"
	}

	response := client.Complete(ctx, buf.String(), 0)
	if llm.IsSentinel(response) {
		return evidence, "critic agent failed, using all snippets"
	}

	sel := ParseSelection(response)
	switch sel.Kind {
	case SelectionNone:
		return nil, "critic found no relevant snippets"
	case SelectionUnparsable:
		return evidence, "critic response was unparsable, using all snippets"
	}

	keep := make(map[int]bool, len(sel.Indices))
	for _, idx := range sel.Indices {
		keep[idx] = true
	}

	var filtered []types.EvidenceItem
	for _, item := range evidence {
		if keep[item.Index] {
			filtered = append(filtered, item)
		}
	}

	picked := make([]string, len(sel.Indices))
	for i, idx := range sel.Indices {
		picked[i] = strconv.Itoa(idx)
	}
	return filtered, "critic selected snippets: " + strings.Join(picked, ", ")
}
