// Package ai talks to the local language-model runtime used for natural
// language questions about the uploaded data.
package ai

import "context"

// Message is one chat turn sent to the runtime.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is the provider-neutral completion request.
type GenerateRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Choice is one completion alternative.
type Choice struct {
	Message Message `json:"message"`
}

// GenerateResponse is the provider-neutral completion response.
type GenerateResponse struct {
	Choices   []Choice `json:"choices"`
	RequestID string   `json:"-"`
}

// Text returns the first choice content, or "".
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Runtime is implemented by model backends (local Ollama in production,
// fakes in tests).
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}
