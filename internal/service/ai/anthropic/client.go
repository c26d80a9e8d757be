package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/service/ai"
)

// Client implements the ai.Gateway interface against the Anthropic API.
type Client struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewClient creates an Anthropic gateway for the given model.
func NewClient(apiKey, model string, maxTokens int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Client{
		client:    &client,
		model:     model,
		maxTokens: int64(maxTokens),
	}, nil
}

// Complete sends a single user message and concatenates the text blocks of
// the response. Thinking and tool blocks are ignored; a response without any
// text block is reported as ai.ErrNoContent so the caller can retry.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", ai.ErrNoContent
	}

	return text.String(), nil
}
