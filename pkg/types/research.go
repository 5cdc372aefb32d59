// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research pipeline.
package types

// Intent classifies a query and steers the evidence-gathering strategy.
type Intent string

const (
	// IntentAcademic routes the query through academic site filters.
	IntentAcademic Intent = "academic_research"

	// IntentCode marks queries about the user's local codebase.
	IntentCode Intent = "code_search"

	// IntentGeneral is the catch-all for everything else.
	IntentGeneral Intent = "general_search"
)

// EvidenceItem is one web search result, numbered for citation purposes.
// Items are numbered 1..N in provider order and never mutated after creation.
type EvidenceItem struct {
	// Index is the 1-based position assigned at gathering time. Unique and
	// stable within one gathering round.
	Index int `json:"index" yaml:"index"`

	// Title is the result title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Snippet is the result body text.
	Snippet string `json:"snippet" yaml:"snippet"`

	// SourceURL is the result URL.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// SourceRef is the target of one citation token.
type SourceRef struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// SourceMap maps citation tokens of the form "[Source N]" to their sources.
// Tokens are derived from ordinal positions in the filtered evidence list,
// not from the items' original indices.
type SourceMap map[string]SourceRef

// CodeChunk is one overlapping window of a source file. SourcePath is
// inherited unchanged from the file and is identical across all chunks of
// that file.
type CodeChunk struct {
	Content    string `json:"content" yaml:"content"`
	SourcePath string `json:"source_path" yaml:"source_path"`
}

// Verdict is the quality-review judgment on a generated report.
type Verdict struct {
	// Accepted reports whether the review passed.
	Accepted bool `json:"accepted" yaml:"accepted"`

	// Message carries the rejection rationale. Empty on acceptance.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// QAExchange is one follow-up question and its answer.
type QAExchange struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}
