package textgen

// GenerateRequest is one prompt sent to the text-generation service.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	// System primes the model with task context, e.g. "You are a football
	// scouting assistant."
	System    string `json:"system,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type streamChunk struct {
	Token string `json:"token"`
	Done  bool   `json:"done"`
}
