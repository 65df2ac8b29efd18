package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/core/ports"
)

// Client generates blog content through the Gemini API. It implements
// ports.TextGenerator.
type Client struct {
	client *genai.Client
	cfg    *configs.GeminiConfig
	logger *logrus.Logger
}

// NewClient creates a Gemini-backed text generator.
func NewClient(ctx context.Context, cfg *configs.GeminiConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client: gc,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateContent sends the prompt to the model and parses the JSON article
// payload out of the response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
	model := c.client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(c.cfg.Temperature)
	model.SetMaxOutputTokens(c.cfg.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ports.NewGenerationError(ports.GenerationTimeout, err)
		}
		if c.logger != nil {
			c.logger.WithError(err).Error("gemini: generate call failed")
		}
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := collectText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, ports.NewGenerationError(ports.GenerationEmpty, errors.New("model returned no text"))
	}

	content, err := parsePayload(text)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).WithField("model", c.cfg.Model).Warn("gemini: response was not the expected JSON, using raw text")
		}
		// A non-JSON but non-empty reply is still usable article text.
		return &ports.GeneratedContent{Content: text}, nil
	}

	return content, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

// parsePayload decodes the article JSON, tolerating markdown code fences that
// some model versions wrap around the body.
func parsePayload(text string) (*ports.GeneratedContent, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var content ports.GeneratedContent
	if err := json.Unmarshal([]byte(trimmed), &content); err != nil {
		return nil, fmt.Errorf("failed to parse generated payload: %w", err)
	}
	return &content, nil
}
