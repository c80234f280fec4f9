package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

const defaultPollinationsBaseURL = "https://pollinations.ai/p/"

// PollinationsProvider generates images through Pollinations.ai, which
// answers a plain GET with the finished image bytes. The image is written
// under the public directory and referenced by a site-relative path.
type PollinationsProvider struct {
	baseURL    string
	publicDir  string
	httpClient *http.Client
}

// NewPollinationsProvider creates a Pollinations-backed image provider
// writing into publicDir.
func NewPollinationsProvider(publicDir string) *PollinationsProvider {
	return &PollinationsProvider{
		baseURL:    defaultPollinationsBaseURL,
		publicDir:  publicDir,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint (tests point it at a local server).
func (p *PollinationsProvider) SetBaseURL(url string) { p.baseURL = url }

// Generate fetches the image for the prompt and saves it locally. Any
// failure yields the category fallback.
func (p *PollinationsProvider) Generate(ctx context.Context, prompt string, category core.Category) string {
	path, err := p.fetchAndSave(ctx, prompt)
	if err != nil {
		logger.Warn("Pollinations image generation failed, using fallback", "error", err.Error())
		return FallbackImage(category)
	}
	return path
}

func (p *PollinationsProvider) fetchAndSave(ctx context.Context, prompt string) (string, error) {
	imageURL := p.baseURL + url.PathEscape(prompt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pollinations API error (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image response")
	}

	return writeBlogImage(p.publicDir, data, "png")
}
