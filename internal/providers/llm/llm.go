package llm

import "context"

// Provider is the external chat-completion collaborator. Implementations
// must turn every upstream failure into an error, never a panic.
type Provider interface {
	// Complete sends the system prompt and user query as structured
	// messages and returns the generated text.
	Complete(ctx context.Context, systemPrompt, userQuery string) (string, error)
}
