package dto

// ProviderOverride carries per-tenant credentials and model choice. Zero
// fields fall back to process-level configuration.
type ProviderOverride struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ChatRequest is a provider-agnostic chat completion request.
type ChatRequest struct {
	Model              string
	SystemPrompt       string
	UserPrompt         string
	ResponseFormatName string
	Override           ProviderOverride
}

// TokenUsage reports token consumption for one completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is a provider-agnostic chat completion result. Raw holds the
// unmodified provider payload for auditing.
type ChatResponse struct {
	Content string
	Usage   TokenUsage
	Raw     []byte
}

// OpenAIMessage is a single message in an OpenAI-compatible request.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponseFormat requests structured JSON output by schema name.
type OpenAIResponseFormat struct {
	Type       string                 `json:"type"`
	JSONSchema map[string]interface{} `json:"json_schema,omitempty"`
}

// OpenAIRequest is the wire format for OpenAI-compatible chat completions.
type OpenAIRequest struct {
	Model          string                `json:"model"`
	Messages       []OpenAIMessage       `json:"messages"`
	ResponseFormat *OpenAIResponseFormat `json:"response_format,omitempty"`
}

// OpenAIChoice is one completion choice.
type OpenAIChoice struct {
	Index   int           `json:"index"`
	Message OpenAIMessage `json:"message"`
}

// OpenAIResponse is the wire format of an OpenAI-compatible completion.
type OpenAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
	Usage   TokenUsage     `json:"usage"`
	Error   *OpenAIError   `json:"error,omitempty"`
}

// OpenAIError is the error envelope some providers return with HTTP 200.
type OpenAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}
