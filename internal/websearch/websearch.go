// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch gathers web evidence for a classified query. A Provider
// wraps one search engine; Gather applies intent-specific query augmentation
// and numbers the results for citation.
package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// Result is one raw search hit as returned by a provider.
type Result struct {
	Title   string
	Snippet string
	URL     string
}

// Provider searches a single web search engine. Implementations return an
// empty slice, never an error, when the query simply has no hits.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Gather invokes the provider once and converts its output into numbered
// evidence items. For academic_research queries the query is rewritten to an
// OR-disjunction of the configured site filters appended in parentheses;
// other intents pass through unmodified.
//
// Results are numbered 1..N in provider order with no de-duplication or
// re-ranking. An empty result set is not an error.
func Gather(ctx context.Context, provider Provider, query string, intent types.Intent, cfg types.SearchConfig) ([]types.EvidenceItem, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	if intent == types.IntentAcademic {
		sites := cfg.AcademicSites
		if len(sites) == 0 {
			sites = types.DefaultAcademicSites
		}
		query = fmt.Sprintf("%s (%s)", query, strings.Join(sites, " OR "))
	}

	results, err := provider.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", provider.Name(), err)
	}

	items := make([]types.EvidenceItem, 0, len(results))
	for i, r := range results {
		items = append(items, types.EvidenceItem{
			Index:     i + 1,
			Title:     r.Title,
			Snippet:   r.Snippet,
			SourceURL: r.URL,
		})
	}
	return items, nil
}
