// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"context"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// Session owns the interactive state around one finalized report: the report
// itself, its source map, and the follow-up history. The pipeline stages stay
// pure functions of their inputs; all retained state lives here, held by the
// caller. Not safe for concurrent use.
type Session struct {
	report  string
	sources types.SourceMap
	history []types.QAExchange
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// SetReport installs a newly finalized report and clears the follow-up
// history. The report is treated as frozen ground truth until the next call.
func (s *Session) SetReport(report string, sources types.SourceMap) {
	s.report = report
	s.sources = sources
	s.history = nil
}

// Report returns the current report, or "" when none has been produced.
func (s *Session) Report() string { return s.report }

// Sources returns the current source map.
func (s *Session) Sources() types.SourceMap { return s.sources }

// History returns the follow-up exchanges for the current report, oldest
// first.
func (s *Session) History() []types.QAExchange { return s.history }

// Ask answers a follow-up question against the current report and appends
// the exchange to the history.
func (s *Session) Ask(ctx context.Context, client llm.Client, question string) string {
	answer := Answer(ctx, client, s.report, question)
	s.history = append(s.history, types.QAExchange{Question: question, Answer: answer})
	return answer
}
