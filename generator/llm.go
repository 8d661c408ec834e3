package generator

import "context"

// LLMClient abstracts the generation backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt is one structured request to the model. Schema (when non-nil) is a
// JSON schema the response body must conform to; SchemaName identifies it.
type Prompt struct {
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}

// LLMSettings is the base configuration handed to concrete implementations.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
