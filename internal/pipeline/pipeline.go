// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the agent stages for one research query:
// route, gather, retrieve, critique, synthesize, review, revise.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shammeer-s/ResearchRAGAgent/internal/codeindex"
	"github.com/shammeer-s/ResearchRAGAgent/internal/critic"
	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/internal/review"
	"github.com/shammeer-s/ResearchRAGAgent/internal/router"
	"github.com/shammeer-s/ResearchRAGAgent/internal/synthesis"
	"github.com/shammeer-s/ResearchRAGAgent/internal/websearch"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// defaultSynthesisTemperature keeps report wording mostly deterministic while
// allowing minor lexical variation.
const defaultSynthesisTemperature = 0.1

// Orchestrator wires the stages together. Every field is supplied by the
// caller; stages never read ambient state.
type Orchestrator struct {
	// LLM is the chat completion capability shared by all agent stages.
	LLM llm.Client

	// Provider is the web search capability.
	Provider websearch.Provider

	// Retriever serves code context. Nil means no code index is loaded.
	Retriever *codeindex.Retriever

	// SearchCfg configures evidence gathering.
	SearchCfg types.SearchConfig

	// SynthesisTemperature overrides the synthesis sampling temperature
	// when positive.
	SynthesisTemperature float32

	// Logger receives stage diagnostics. Nil falls back to a no-op logger.
	Logger *zap.Logger
}

// Outcome carries everything one query cycle produced. The report and source
// map are frozen once returned; follow-up answering treats them as read-only
// ground truth.
type Outcome struct {
	Query           string               `json:"query" yaml:"query"`
	Intent          types.Intent         `json:"intent" yaml:"intent"`
	Evidence        []types.EvidenceItem `json:"evidence" yaml:"evidence"`
	Filtered        []types.EvidenceItem `json:"filtered" yaml:"filtered"`
	CriticRationale string               `json:"critic_rationale" yaml:"critic_rationale"`
	Report          string               `json:"report" yaml:"report"`
	Sources         types.SourceMap      `json:"sources" yaml:"sources"`
	Verdict         types.Verdict        `json:"verdict" yaml:"verdict"`
	Revised         bool                 `json:"revised" yaml:"revised"`
}

// Run executes one research cycle. Stage progress is reported on w (may be
// nil). The verdict gates exactly one revision: Draft -> Reviewed ->
// {Accepted | Revised}; a second rejecting verdict never triggers a third
// synthesis call, which bounds model cost and latency.
//
// A search failure aborts the cycle with a terminal error. Code retrieval
// failures degrade to the "unavailable" marker: the web path alone still
// produces a useful report.
func (o *Orchestrator) Run(ctx context.Context, query string, w io.Writer) (Outcome, error) {
	if w == nil {
		w = io.Discard
	}
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return Outcome{}, fmt.Errorf("query is empty")
	}

	outcome := Outcome{Query: query}

	fmt.Fprintln(w, "Classifying query...")
	outcome.Intent = router.Classify(ctx, o.LLM, query)
	fmt.Fprintf(w, "Router decision: %s\n", outcome.Intent)

	// Web evidence and code context have no ordering requirement between
	// them; fetch both before synthesis. Progress goes to w only from this
	// goroutine, so callers may pass an unsynchronized writer.
	codeContext := codeindex.NoContext
	fmt.Fprintln(w, "Gathering web evidence...")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		evidence, err := websearch.Gather(gctx, o.Provider, query, outcome.Intent, o.SearchCfg)
		if err != nil {
			return err
		}
		outcome.Evidence = evidence
		return nil
	})
	if o.Retriever != nil {
		fmt.Fprintln(w, "Retrieving code context...")
		g.Go(func() error {
			chunks, err := o.Retriever.Retrieve(gctx, query)
			if err != nil {
				// Degraded: report still gets built from web evidence.
				logger.Warn("code retrieval failed", zap.Error(err))
				return nil
			}
			codeContext = codeindex.FormatContext(chunks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcome, fmt.Errorf("gathering evidence: %w", err)
	}

	fmt.Fprintf(w, "Critiquing %d snippets...\n", len(outcome.Evidence))
	outcome.Filtered, outcome.CriticRationale = critic.Filter(ctx, o.LLM, query, outcome.Evidence)
	fmt.Fprintf(w, "Critic decision: %s\n", outcome.CriticRationale)

	researchContext, sources := synthesis.FormatEvidence(outcome.Filtered)
	outcome.Sources = sources

	temperature := o.SynthesisTemperature
	if temperature <= 0 {
		temperature = defaultSynthesisTemperature
	}

	fmt.Fprintln(w, "Synthesizing report...")
	draft := synthesis.Synthesize(ctx, o.LLM, query, researchContext, codeContext, "", temperature)
	if llm.IsSentinel(draft) {
		logger.Warn("synthesis degraded to sentinel response")
	}

	fmt.Fprintln(w, "Reviewing report quality...")
	outcome.Verdict = review.Review(ctx, o.LLM, query, draft)

	outcome.Report = draft
	if !outcome.Verdict.Accepted {
		fmt.Fprintf(w, "Reviewer rejected draft: %s\n", outcome.Verdict.Message)
		fmt.Fprintln(w, "Re-synthesizing with feedback...")
		outcome.Report = synthesis.Synthesize(ctx, o.LLM, query, researchContext, codeContext,
			outcome.Verdict.Message, temperature)
		outcome.Revised = true
	}

	fmt.Fprintln(w, "Research complete.")
	logger.Info("research cycle finished",
		zap.String("intent", string(outcome.Intent)),
		zap.Int("evidence", len(outcome.Evidence)),
		zap.Int("filtered", len(outcome.Filtered)),
		zap.Bool("revised", outcome.Revised))

	return outcome, nil
}
