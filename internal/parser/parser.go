// Package parser turns the raw, noisy text returned by the generative model
// into a validated blog post draft. Models wrap their JSON in markdown
// fences, prepend prose, or append commentary; extraction has to cope with
// all of it before the strict parse runs.
package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"blogsmith/internal/core"
)

const (
	// MinContentLength is the minimum content size for a publishable draft.
	MinContentLength = 100
	// MaxMetaTitleLength caps the SEO title.
	MaxMetaTitleLength = 60
	// MaxMetaDescriptionLength caps the SEO description.
	MaxMetaDescriptionLength = 160
	// WordsPerMinute is the assumed reading speed for reading_time derivation.
	WordsPerMinute = 200
)

var (
	openingFenceRe = regexp.MustCompile("```(?:json)?[ \t]*\n?")
	commentRe      = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
)

// rawDraft mirrors the JSON shape the model is prompted to return. Tags is
// kept raw because models sometimes return it as a string instead of an
// array; anything that is not a string array is discarded and re-derived
// during defaulting.
type rawDraft struct {
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	Excerpt         string          `json:"excerpt"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	Tags            json.RawMessage `json:"tags"`
	ReadingTime     int             `json:"reading_time"`
	FeaturedImage   string          `json:"featured_image"`
}

// Extract locates and parses the JSON object embedded in raw model output.
// It prefers a fenced code block (first opening fence to the LAST closing
// fence, so fences inside the generated content don't truncate the payload)
// and falls back to slicing between the first '{' and last '}'. Comments are
// stripped defensively on the fallback path only; a clean fenced payload is
// parsed as-is.
func Extract(raw string) (*core.PostDraft, error) {
	if fenced, ok := sliceFencedBlock(raw); ok {
		if draft, err := parseObject(fenced); err == nil {
			return draft, nil
		}
		// A broken fenced payload still usually contains the object; let
		// the brace slice take another run at it.
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first == -1 || last == -1 || first >= last {
		return nil, fmt.Errorf("%w: response length %d", ErrNoJSONFound, len(raw))
	}

	candidate := raw[first : last+1]
	candidate = commentRe.ReplaceAllString(candidate, "")

	// Comment stripping can shave trailing content; re-anchor on the braces.
	first = strings.Index(candidate, "{")
	last = strings.LastIndex(candidate, "}")
	if first == -1 || last == -1 || first >= last {
		return nil, fmt.Errorf("%w: nothing left after comment stripping", ErrNoJSONFound)
	}

	draft, err := parseObject(candidate[first : last+1])
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// sliceFencedBlock returns the text between the first opening fence and the
// last closing fence, if both exist.
func sliceFencedBlock(raw string) (string, bool) {
	loc := openingFenceRe.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}

	start := loc[1]
	end := strings.LastIndex(raw, "```")
	if end <= start {
		return "", false
	}

	return strings.TrimSpace(raw[start:end]), true
}

func parseObject(jsonText string) (*core.PostDraft, error) {
	var rd rawDraft
	if err := json.Unmarshal([]byte(jsonText), &rd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}

	draft := &core.PostDraft{
		Title:           rd.Title,
		Content:         rd.Content,
		Excerpt:         rd.Excerpt,
		MetaTitle:       rd.MetaTitle,
		MetaDescription: rd.MetaDescription,
		ReadingTime:     rd.ReadingTime,
		FeaturedImage:   rd.FeaturedImage,
	}

	// Only a proper string array survives; scalar or malformed tags are
	// re-derived during defaulting.
	if len(rd.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(rd.Tags, &tags); err == nil {
			draft.Tags = tags
		}
	}

	return draft, nil
}

// Validate checks that a parsed draft has the fields a publishable post
// needs. It never mutates the draft and always runs before defaulting, so a
// defaulted field can never mask a validation failure.
func Validate(draft *core.PostDraft) error {
	if draft.Title == "" {
		return ErrMissingTitle
	}
	if draft.Content == "" {
		return ErrMissingContent
	}
	if draft.Excerpt == "" {
		return ErrMissingExcerpt
	}
	if len(draft.Content) < MinContentLength {
		return fmt.Errorf("%w: %d chars, need at least %d", ErrContentTooShort, len(draft.Content), MinContentLength)
	}
	return nil
}

// ApplyDefaults fills every optional field that the model left out. It is
// idempotent: running it on an already complete draft changes nothing.
func ApplyDefaults(draft *core.PostDraft, topic core.Topic) {
	if draft.MetaTitle == "" {
		draft.MetaTitle = truncateWithEllipsis(draft.Title, MaxMetaTitleLength)
	}

	if draft.MetaDescription == "" {
		draft.MetaDescription = truncateWithEllipsis(draft.Excerpt, MaxMetaDescriptionLength)
	}

	if draft.Tags == nil {
		draft.Tags = TagsFromTopic(topic.Text, topic.Category)
	}

	if draft.ReadingTime == 0 {
		words := len(strings.Fields(draft.Content))
		draft.ReadingTime = int(math.Max(1, math.Ceil(float64(words)/WordsPerMinute)))
	}
}

// truncateWithEllipsis shortens s to max characters, reserving three for the
// ellipsis when truncation happens.
func truncateWithEllipsis(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// categoryTags maps each category to its base tag set.
var categoryTags = map[core.Category][]string{
	core.CategoryWebDevelopment: {"web development", "frontend", "javascript"},
	core.CategoryReactFrontend:  {"react", "frontend", "javascript", "jsx"},
	core.CategoryBackendAPIs:    {"backend", "api", "server", "database"},
	core.CategoryDevOpsCloud:    {"devops", "cloud", "deployment", "infrastructure"},
	core.CategoryAIMachine:      {"ai", "machine learning", "artificial intelligence"},
	core.CategoryCareerTips:     {"career", "tips", "developer", "programming"},
}

// TagsFromTopic derives a tag list from the category's base tags plus the
// longer words of the topic text, capped at six tags.
func TagsFromTopic(topicText string, category core.Category) []string {
	tags := make([]string, 0, 6)
	base, ok := categoryTags[category]
	if !ok {
		base = []string{"programming", "development"}
	}
	tags = append(tags, base...)

	for _, word := range strings.Fields(strings.ToLower(topicText)) {
		if len(word) > 3 && !contains(tags, word) {
			tags = append(tags, word)
		}
	}

	if len(tags) > 6 {
		tags = tags[:6]
	}
	return tags
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// ExtractStringArray parses a JSON string array out of model output that may
// be wrapped in markdown fences. Used for title suggestions.
func ExtractStringArray(raw string) ([]string, error) {
	clean := strings.TrimSpace(raw)
	clean = openingFenceRe.ReplaceAllString(clean, "")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	var items []string
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}
	return items, nil
}
