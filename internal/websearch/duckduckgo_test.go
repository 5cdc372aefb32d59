// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="results">
  <div class="result results_links web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Farxiv.org%2Fabs%2F1706.03762&amp;rut=abc">Attention Is All You Need</a>
      </h2>
      <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Farxiv.org%2Fabs%2F1706.03762">The dominant sequence transduction models...</a>
    </div>
  </div>
  <div class="result results_links web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="https://jmlr.org/papers/v21">Direct link result</a>
      </h2>
      <a class="result__snippet" href="https://jmlr.org/papers/v21">A snippet without a redirect.</a>
    </div>
  </div>
  <div class="result result--ad">
    <div class="result__body">
      <h2><a class="result__a" href="">Ad with no href</a></h2>
    </div>
  </div>
</div>
</body></html>`

func testSearchCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "researchrag-test/0.1",
		},
		MaxResults: 5,
	}
}

func withTestEndpoint(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := duckduckgoEndpoint
	duckduckgoEndpoint = ts.URL + "/html/"
	t.Cleanup(func() { duckduckgoEndpoint = old })
}

func TestDuckDuckGoSearchParsesResults(t *testing.T) {
	var gotQuery string
	withTestEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		io.WriteString(w, resultsPage)
	})

	b := NewDuckDuckGo(testSearchCfg())
	results, err := b.Search(context.Background(), "attention is all you need", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "attention is all you need" {
		t.Errorf("query = %q, want the raw query", gotQuery)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (ad skipped)", len(results))
	}

	if results[0].Title != "Attention Is All You Need" {
		t.Errorf("results[0].Title = %q", results[0].Title)
	}
	if results[0].URL != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("results[0].URL = %q, want unwrapped redirect", results[0].URL)
	}
	if results[0].Snippet != "The dominant sequence transduction models..." {
		t.Errorf("results[0].Snippet = %q", results[0].Snippet)
	}

	if results[1].URL != "https://jmlr.org/papers/v21" {
		t.Errorf("results[1].URL = %q, want direct link", results[1].URL)
	}
}

func TestDuckDuckGoSearchCapsResults(t *testing.T) {
	withTestEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, resultsPage)
	})

	b := NewDuckDuckGo(testSearchCfg())
	results, err := b.Search(context.Background(), "anything", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("len(results) = %d, want 1", len(results))
	}
}

func TestDuckDuckGoSearchHTTPError(t *testing.T) {
	withTestEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	b := NewDuckDuckGo(testSearchCfg())
	if _, err := b.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("Search() error = nil, want HTTP error")
	}
}

func TestDuckDuckGoSearchNoResults(t *testing.T) {
	withTestEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body><div class="no-results">No results.</div></body></html>`)
	})

	b := NewDuckDuckGo(testSearchCfg())
	results, err := b.Search(context.Background(), "gibberish query", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"redirect link", "//duckduckgo.com/l/?uddg=https%3A%2F%2Farxiv.org%2Fabs%2F1", "https://arxiv.org/abs/1"},
		{"direct link", "https://example.com/page", "https://example.com/page"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRedirect(tt.href); got != tt.want {
				t.Errorf("resolveRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
