// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/shammeer-s/ResearchRAGAgent/internal/httputil"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// duckduckgoEndpoint is the DuckDuckGo HTML search endpoint. Declared as a
// var so tests can substitute an httptest server.
var duckduckgoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGoBackend queries the DuckDuckGo HTML endpoint and scrapes the
// result list. The HTML surface needs no API key, which keeps the default
// configuration runnable out of the box.
type DuckDuckGoBackend struct {
	client    *http.Client
	userAgent string
}

// NewDuckDuckGo builds a backend from the search configuration.
func NewDuckDuckGo(cfg types.SearchConfig) *DuckDuckGoBackend {
	return &DuckDuckGoBackend{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Name returns the provider identifier.
func (b *DuckDuckGoBackend) Name() string { return "duckduckgo" }

// Search fetches one page of results and returns up to maxResults hits.
func (b *DuckDuckGoBackend) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	reqURL := fmt.Sprintf("%s?q=%s", duckduckgoEndpoint, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing duckduckgo response: %w", err)
	}

	results := parseResults(doc)
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// parseResults walks the document and extracts one Result per result body
// container. Hits with a missing title or URL are skipped.
func parseResults(doc *html.Node) []Result {
	var results []Result

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "result__body") {
			if r, ok := extractResult(n); ok {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return results
}

// extractResult pulls the title link and snippet out of one result body.
func extractResult(body *html.Node) (Result, bool) {
	link := findByClass(body, "a", "result__a")
	if link == nil {
		return Result{}, false
	}

	r := Result{
		Title: strings.TrimSpace(textContent(link)),
		URL:   resolveRedirect(attrValue(link, "href")),
	}
	if r.Title == "" || r.URL == "" {
		return Result{}, false
	}

	if snippet := findByClass(body, "", "result__snippet"); snippet != nil {
		r.Snippet = strings.TrimSpace(textContent(snippet))
	}
	return r, true
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// hasClass reports whether the node's class attribute contains name as one
// of its space-separated values.
func hasClass(n *html.Node, name string) bool {
	for _, cls := range strings.Fields(attrValue(n, "class")) {
		if cls == name {
			return true
		}
	}
	return false
}

// findByClass returns the first descendant with the given tag (any tag when
// empty) carrying the given class, or nil.
func findByClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && (tag == "" || n.Data == tag) && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes beneath n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
