package images

import (
	"context"

	"blogsmith/internal/core"
)

// StaticProvider always answers with the category fallback image. Used when
// no image API is configured and as the health-check strategy.
type StaticProvider struct{}

// NewStaticProvider creates a fallback-only image provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Generate returns the category fallback image, ignoring the prompt.
func (p *StaticProvider) Generate(_ context.Context, _ string, category core.Category) string {
	return FallbackImage(category)
}
