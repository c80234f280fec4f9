package images

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

// geminiImageModel is the image-capable Gemini model.
const geminiImageModel = "gemini-2.0-flash-exp"

// GeminiProvider generates images with Gemini's image-output mode. The
// model returns the image inline as binary data, which is written under the
// public directory like the other local-file strategy.
type GeminiProvider struct {
	gClient   *genai.Client
	publicDir string
	model     string
}

// NewGeminiProvider creates a Gemini-backed image provider sharing the text
// client's underlying connection.
func NewGeminiProvider(gClient *genai.Client, publicDir string) *GeminiProvider {
	return &GeminiProvider{
		gClient:   gClient,
		publicDir: publicDir,
		model:     geminiImageModel,
	}
}

// Generate asks the model for an inline image and saves it locally. Any
// failure yields the category fallback.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, category core.Category) string {
	path, err := p.generateAndSave(ctx, prompt)
	if err != nil {
		logger.Warn("Gemini image generation failed, using fallback", "error", err.Error())
		return FallbackImage(category)
	}
	return path
}

func (p *GeminiProvider) generateAndSave(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: "Please generate an image for: " + prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	resp, err := p.gClient.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return writeBlogImage(p.publicDir, part.InlineData.Data, extFromMIME(part.InlineData.MIMEType))
			}
		}
	}

	return "", fmt.Errorf("no image data found in gemini response")
}

func extFromMIME(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		return "jpg"
	case strings.Contains(mimeType, "webp"):
		return "webp"
	default:
		return "png"
	}
}
