package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIInvoker calls OpenAI-compatible chat completion endpoints. The model
// is picked per call by the router, not fixed at construction.
type OpenAIInvoker struct {
	client *openai.Client
}

var _ Invoker = (*OpenAIInvoker)(nil)

// NewOpenAIInvoker builds an invoker for the given credential. baseURL is
// optional and points the client at any OpenAI-compatible API.
func NewOpenAIInvoker(apiKey, baseURL string) *OpenAIInvoker {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIInvoker{client: openai.NewClientWithConfig(cfg)}
}

// Invoke sends the prompt as a single user message and returns the first
// choice's text. An empty choice list comes back as empty text, which the
// router treats as a failure.
func (c *OpenAIInvoker) Invoke(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
