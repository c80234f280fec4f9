// Package llm wraps the Gemini API for blog text generation.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"blogsmith/internal/parser"
)

const (
	// DefaultModel is the default Gemini model used for blog generation.
	DefaultModel = "gemini-2.0-flash"
)

// Client represents a client for interacting with the Gemini API.
type Client struct {
	apiKey    string
	modelName string
	gClient   *genai.Client
}

// NewClient creates a new Gemini client.
// It supports multiple ways to get the API key (in order of preference):
// 1. Environment variable: GEMINI_API_KEY (or alternatives)
// 2. Viper configuration: gemini.api_key
func NewClient(modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or gemini.api_key in config file")
	}

	if modelName == "" {
		modelName = viper.GetString("gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	ctx := context.Background()
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		apiKey:    apiKey,
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// GenerateText sends a prompt to the model and returns the raw response text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// GenerateTitleSuggestions asks the model for count alternative titles for a
// topic and parses the returned JSON array. A malformed response yields an
// empty list rather than an error; suggestions are advisory.
func (c *Client) GenerateTitleSuggestions(ctx context.Context, topic string, count int) ([]string, error) {
	prompt := fmt.Sprintf(`Generate %d engaging, SEO-friendly blog post titles about "%s" for a developer blog.
Make them compelling but professional. Return ONLY a JSON array of strings, no additional text.

Example format: ["Title 1", "Title 2", "Title 3"]`, count, topic)

	text, err := c.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate title suggestions: %w", err)
	}

	titles, err := parser.ExtractStringArray(text)
	if err != nil {
		return []string{}, nil
	}

	cleaned := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned, nil
}

// GetGenaiClient returns the underlying genai client for direct use by other
// packages (the gemini image strategy shares it).
func (c *Client) GetGenaiClient() *genai.Client {
	return c.gClient
}

// GetModelName returns the model name used by this client.
func (c *Client) GetModelName() string {
	return c.modelName
}

// Close cleans up resources used by the client.
func (c *Client) Close() {
	// The genai client doesn't require explicit close.
}
