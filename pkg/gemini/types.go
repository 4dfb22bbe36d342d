package gemini

// Request is a text generation request.
type Request struct {
	System      string // Optional system instruction
	Prompt      string // User prompt
	Temperature float64
	MaxTokens   int
}

// Response is a text generation response.
type Response struct {
	Text string
}

// geminiContent wraps a list of parts to form a message.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

// geminiGenerationConfig holds optional generation settings.
type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// geminiRequest is the top-level request body for the Gemini API.
type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiResponse is the top-level response body from the Gemini API.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}
