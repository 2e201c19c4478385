package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pantry-tracker/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// Client talks to an Azure OpenAI chat-completions deployment.
type Client struct {
	cfg    config.GenerationConfig
	client *resty.Client
}

// NewClient builds a client from the generation configuration.
func NewClient(cfg config.GenerationConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		cfg:    cfg,
		client: client,
	}
}

// Generate sends the prompt and returns the completion text. Errors carry
// the HTTP status when the endpoint answered with a non-2xx code.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := map[string]interface{}{
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": c.cfg.MaxTokens,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api-version", c.cfg.APIVersion).
		SetBody(req).
		Post(fmt.Sprintf("/openai/deployments/%s/chat/completions", c.cfg.Deployment))

	if err != nil {
		return "", fmt.Errorf("failed to reach generation endpoint: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse generation response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in generation response")
	}

	return result.Choices[0].Message.Content, nil
}
