// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides the chat completion capability used by every agent
// stage. The client never surfaces transport errors: failures degrade to a
// fixed sentinel string so each stage can apply its own fallback policy.
package llm

import "context"

// ErrorSentinel is returned by Complete when the model call fails for any
// reason. Stages test for it with IsSentinel and degrade rather than abort.
const ErrorSentinel = "Error: could not get response from model."

// Client is the chat completion capability. Implementations must return
// ErrorSentinel instead of raising on failure.
type Client interface {
	Complete(ctx context.Context, prompt string, temperature float32) string
}

// IsSentinel reports whether a completion is the degraded error response.
func IsSentinel(response string) bool {
	return response == ErrorSentinel
}
