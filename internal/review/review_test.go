// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"strings"
	"testing"

	"github.com/shammeer-s/ResearchRAGAgent/internal/llm"
	"github.com/shammeer-s/ResearchRAGAgent/pkg/types"
)

type scriptedClient struct {
	response  string
	gotPrompt string
}

func (c *scriptedClient) Complete(_ context.Context, prompt string, _ float32) string {
	c.gotPrompt = prompt
	return c.response
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.Verdict
	}{
		{
			"clean acceptance",
			"Yes.",
			types.Verdict{Accepted: true},
		},
		{
			"chatty acceptance",
			"Yes, this is thorough.",
			types.Verdict{Accepted: true},
		},
		{
			"clean rejection",
			"No. Missing citations for claim X",
			types.Verdict{Accepted: false, Message: "Missing citations for claim X"},
		},
		{
			"lowercase rejection",
			"no. too short",
			types.Verdict{Accepted: false, Message: "too short"},
		},
		{
			"marker mid-text",
			"I'd say no. The report ignores the second half of the query.",
			types.Verdict{Accepted: false, Message: "The report ignores the second half of the query."},
		},
		{
			"bare no without period is acceptance",
			"No it is fine",
			types.Verdict{Accepted: true},
		},
		{
			"empty response",
			"",
			types.Verdict{Accepted: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVerdict(tt.raw)
			if got != tt.want {
				t.Errorf("ParseVerdict(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestReviewPromptContents(t *testing.T) {
	c := &scriptedClient{response: "Yes."}
	v := Review(context.Background(), c, "explain X", "the full report text")

	if !v.Accepted {
		t.Errorf("verdict = %+v, want accepted", v)
	}
	if !strings.Contains(c.gotPrompt, `User Query: "explain X"`) {
		t.Errorf("prompt missing query:\n%s", c.gotPrompt)
	}
	if !strings.Contains(c.gotPrompt, "the full report text") {
		t.Errorf("prompt missing report:\n%s", c.gotPrompt)
	}
}

func TestReviewModelFailureAccepts(t *testing.T) {
	c := &scriptedClient{response: llm.ErrorSentinel}
	v := Review(context.Background(), c, "q", "report")
	if !v.Accepted {
		t.Errorf("verdict = %+v, want degraded acceptance", v)
	}
}
