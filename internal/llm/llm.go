package llm

import "context"

// Client produces a completion for a fully assembled prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
