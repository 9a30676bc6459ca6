package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cover-builder-backend/internal/models"
)

const DefaultBaseURL = "https://api.openai.com/v1/"

// Client talks to the OpenAI REST API. Every call is a single attempt.
type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, textModel string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		textModel: textModel,
		httpClient: &http.Client{
			// Image generation routinely takes tens of seconds.
			Timeout: 3 * time.Minute,
		},
	}
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type responsesResponse struct {
	Model  string `json:"model"`
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// GenerateText sends prompt to the Responses API. An empty model falls back
// to the client default. Empty output is returned as-is.
func (c *Client) GenerateText(ctx context.Context, prompt, model string) (models.TextResult, error) {
	if model == "" {
		model = c.textModel
	}

	body, err := c.post(ctx, "/responses", responsesRequest{Model: model, Input: prompt})
	if err != nil {
		return models.TextResult{}, fmt.Errorf("text generation failed: %w", err)
	}

	var result responsesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return models.TextResult{}, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	var text strings.Builder
	for _, item := range result.Output {
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text.WriteString(part.Text)
			}
		}
	}

	return models.TextResult{Model: model, Text: text.String()}, nil
}

type imagesRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imagesResponse struct {
	Data []imageDatum `json:"data"`
}

// GenerateImages returns one PNG buffer per requested image. Anything other
// than embedded base64 data fails the whole call.
func (c *Client) GenerateImages(ctx context.Context, req models.ImageRequest) ([][]byte, error) {
	body, err := c.post(ctx, "/images/generations", imagesRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		N:      req.N,
		Size:   req.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	var result imagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) != req.N {
		return nil, fmt.Errorf("requested %d images, provider returned %d", req.N, len(result.Data))
	}

	images := make([][]byte, 0, len(result.Data))
	for i, item := range result.Data {
		payload := decodeImagePayload(item)
		switch payload.Kind {
		case PayloadEmbeddedBytes:
			images = append(images, payload.Data)
		case PayloadExternalReference:
			return nil, fmt.Errorf("image %d: provider returned a URL instead of embedded data", i)
		case PayloadMalformed:
			return nil, fmt.Errorf("image %d: malformed payload: %s", i, payload.Reason)
		default:
			return nil, fmt.Errorf("image %d: unknown payload kind %d", i, payload.Kind)
		}
	}

	return images, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
