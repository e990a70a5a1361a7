package dto

// GeminiPart is one text fragment in a Gemini content block.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiContent is one content block in a Gemini request or response.
type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

// GeminiRequest is the wire format for the Gemini generateContent endpoint.
type GeminiRequest struct {
	Contents          []GeminiContent  `json:"contents"`
	SystemInstruction *GeminiContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  *GeminiGenConfig `json:"generationConfig,omitempty"`
}

// GeminiGenConfig tunes the Gemini response format.
type GeminiGenConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

// GeminiCandidate is one response candidate.
type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

// GeminiUsage reports Gemini token consumption.
type GeminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GeminiResponse is the wire format of a Gemini completion.
type GeminiResponse struct {
	Candidates    []GeminiCandidate `json:"candidates"`
	UsageMetadata GeminiUsage       `json:"usageMetadata"`
}
