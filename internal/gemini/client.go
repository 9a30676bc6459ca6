package gemini

import (
	"context"
	"fmt"
	"strings"

	"cover-builder-backend/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an alternative text provider backed by the Gemini API.
type Client struct {
	client    *genai.Client
	textModel string
}

func NewClient(ctx context.Context, apiKey, textModel string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, textModel: textModel}, nil
}

// GenerateText sends prompt as a single user turn. Text parts of the first
// candidate are concatenated; no candidates yields empty text.
func (c *Client) GenerateText(ctx context.Context, prompt, model string) (models.TextResult, error) {
	if model == "" {
		model = c.textModel
	}

	resp, err := c.client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.TextResult{}, fmt.Errorf("gemini API call failed: %w", err)
	}

	return models.TextResult{Model: model, Text: responseText(resp)}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}

func (c *Client) Close() error {
	return c.client.Close()
}
