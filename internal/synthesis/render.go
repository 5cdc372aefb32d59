// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

// Render substitutes every known citation token in the report with a
// markdown link to its source. Tokens absent from the source map are left
// untouched: the model's prompt adherence cannot be guaranteed, so rendering
// must never fail on an unknown token.
func Render(report string, sources types.SourceMap) string {
	if len(sources) == 0 {
		return report
	}

	// Deterministic replacement order keeps output stable for tests and
	// diffing.
	tokens := make([]string, 0, len(sources))
	for token := range sources {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		ref := sources[token]
		label := strings.Trim(token, "[]")
		pairs = append(pairs, token, fmt.Sprintf("[%s](%s)", label, ref.URL))
	}
	return strings.NewReplacer(pairs...).Replace(report)
}
