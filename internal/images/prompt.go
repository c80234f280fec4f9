package images

import (
	"strings"

	"blogsmith/internal/core"
)

// categoryStyles maps each category to the scene description anchoring its
// image prompts.
var categoryStyles = map[core.Category]string{
	core.CategoryWebDevelopment: "modern computer setup with clean code on screen, developer workspace, professional lighting",
	core.CategoryReactFrontend:  "sleek web interface design, modern UI elements, React development environment, clean aesthetic",
	core.CategoryBackendAPIs:    "server infrastructure, database connections, API architecture, tech-focused environment",
	core.CategoryDevOpsCloud:    "cloud infrastructure, server networks, deployment pipelines, modern DevOps setup",
	core.CategoryAIMachine:      "artificial intelligence visualization, neural networks, data science workspace, futuristic tech",
	core.CategoryCareerTips:     "professional growth concept, success mindset, modern office environment, career development",
}

const defaultStyle = "modern technology setup, programming environment, professional workspace"

// stopwords are filler words excluded from image-prompt keywords.
var stopwords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {},
}

// BuildPrompt composes the image-generation prompt from the topic, the
// category's style phrase, up to three salient tag keywords and fixed
// quality qualifiers. Keyword order follows tag order, so the result is
// deterministic for a given draft.
func BuildPrompt(topicText string, category core.Category, tags []string) string {
	style, ok := categoryStyles[category]
	if !ok {
		style = defaultStyle
	}

	keywords := make([]string, 0, 3)
	for _, tag := range tags {
		if len(keywords) == 3 {
			break
		}
		if len(tag) <= 2 {
			continue
		}
		if _, skip := stopwords[strings.ToLower(tag)]; skip {
			continue
		}
		keywords = append(keywords, tag)
	}

	parts := []string{
		"Professional tech illustration related to " + topicText,
	}
	if len(keywords) > 0 {
		parts = append(parts, "featuring "+strings.Join(keywords, ", "))
	}
	parts = append(parts,
		style,
		"high quality, modern, clean design, professional photography style, 4k resolution",
		"no text overlays, suitable for blog thumbnail",
	)

	return strings.Join(parts, ", ")
}
