// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// --- mock provider ---

type mockProvider struct {
	gotQuery      string
	gotMaxResults int
	results       []Result
	err           error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Search(_ context.Context, query string, maxResults int) ([]Result, error) {
	m.gotQuery = query
	m.gotMaxResults = maxResults
	return m.results, m.err
}

func TestGatherNumbersResultsInProviderOrder(t *testing.T) {
	p := &mockProvider{results: []Result{
		{Title: "B", Snippet: "second snippet", URL: "https://b.example"},
		{Title: "A", Snippet: "first snippet", URL: "https://a.example"},
	}}

	items, err := Gather(context.Background(), p, "some query", types.IntentGeneral, types.SearchConfig{MaxResults: 5})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	for i, item := range items {
		if item.Index != i+1 {
			t.Errorf("items[%d].Index = %d, want %d", i, item.Index, i+1)
		}
	}
	// Provider order is trusted: no re-sort.
	if items[0].Title != "B" || items[1].Title != "A" {
		t.Errorf("items out of provider order: %q, %q", items[0].Title, items[1].Title)
	}
	if items[0].SourceURL != "https://b.example" {
		t.Errorf("items[0].SourceURL = %q", items[0].SourceURL)
	}
}

func TestGatherAcademicQueryAugmentation(t *testing.T) {
	p := &mockProvider{}
	cfg := types.SearchConfig{
		MaxResults:    3,
		AcademicSites: []string{"site:arxiv.org", "site:jmlr.org"},
	}

	_, err := Gather(context.Background(), p, "transformer attention", types.IntentAcademic, cfg)
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := "transformer attention (site:arxiv.org OR site:jmlr.org)"
	if p.gotQuery != want {
		t.Errorf("dispatched query = %q, want %q", p.gotQuery, want)
	}
	if p.gotMaxResults != 3 {
		t.Errorf("maxResults = %d, want 3", p.gotMaxResults)
	}
}

func TestGatherNonAcademicQueryPassesThrough(t *testing.T) {
	for _, intent := range []types.Intent{types.IntentGeneral, types.IntentCode} {
		p := &mockProvider{}
		_, err := Gather(context.Background(), p, "what is new in go 1.25", intent, types.SearchConfig{})
		if err != nil {
			t.Fatalf("Gather(%s) error = %v", intent, err)
		}
		if p.gotQuery != "what is new in go 1.25" {
			t.Errorf("intent %s: query = %q, want pass-through", intent, p.gotQuery)
		}
	}
}

func TestGatherAcademicDefaultSites(t *testing.T) {
	p := &mockProvider{}
	_, err := Gather(context.Background(), p, "q", types.IntentAcademic, types.SearchConfig{})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if !strings.Contains(p.gotQuery, "site:arxiv.org") {
		t.Errorf("query = %q, want default site filters", p.gotQuery)
	}
}

func TestGatherEmptyResultsIsNotAnError(t *testing.T) {
	p := &mockProvider{results: nil}
	items, err := Gather(context.Background(), p, "q", types.IntentGeneral, types.SearchConfig{})
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}

func TestGatherProviderError(t *testing.T) {
	p := &mockProvider{err: errors.New("network down")}
	if _, err := Gather(context.Background(), p, "q", types.IntentGeneral, types.SearchConfig{}); err == nil {
		t.Fatal("Gather() error = nil, want provider error")
	}
}
