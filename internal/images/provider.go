// Package images turns a generated blog draft into a featured-image
// reference. Four interchangeable strategies sit behind one interface;
// whatever goes wrong inside a strategy, the caller always gets a usable
// image reference back, at worst the static category fallback.
package images

import (
	"context"

	"blogsmith/internal/core"
)

// Provider generates a featured-image reference (a remote URL or a
// site-relative path) for a prompt. Implementations never fail: internal
// errors collapse to the category fallback.
type Provider interface {
	Generate(ctx context.Context, prompt string, category core.Category) string
}

// fallbackImages maps each category to a static stock image used whenever
// AI generation fails or is disabled.
var fallbackImages = map[core.Category]string{
	core.CategoryWebDevelopment: "https://images.pexels.com/photos/3861969/pexels-photo-3861969.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop",
	core.CategoryReactFrontend:  "https://images.pexels.com/photos/4348404/pexels-photo-4348404.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop",
	core.CategoryBackendAPIs:    "https://images.pexels.com/photos/1181244/pexels-photo-1181244.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop",
	core.CategoryDevOpsCloud:    "https://images.pexels.com/photos/325185/pexels-photo-325185.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop",
	core.CategoryAIMachine:      "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop",
	core.CategoryCareerTips:     "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop",
}

// FallbackImage returns the static stock image for a category, defaulting
// to the web-development image for unknown categories.
func FallbackImage(category core.Category) string {
	if url, ok := fallbackImages[category]; ok {
		return url
	}
	return fallbackImages[core.CategoryWebDevelopment]
}
