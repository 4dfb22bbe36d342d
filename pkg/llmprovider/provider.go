package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "deepseek", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized text generation request
type Request struct {
	System      string // Optional system instruction
	Prompt      string // User prompt
	Temperature float64
	MaxTokens   int
}

// Response represents a normalized text generation response
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
}
