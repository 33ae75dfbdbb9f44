// Package adapter provides a uniform interface over the chat model
// providers the agent can use for natural-language-to-SQL translation.
// Every adapter requests deterministic sampling (temperature 0) so
// repeated calls with the same question produce the same query.
package adapter

import "context"

// Adapter defines the interface for chat model providers.
type Adapter interface {
	// Generate sends a system instruction and a user question to the
	// model and returns the raw text response.
	Generate(ctx context.Context, model string, system string, user string) (*Response, error)

	// Name returns the adapter's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}

// Response wraps a model's raw text output.
type Response struct {
	Content string
	Adapter string
	Model   string
}
