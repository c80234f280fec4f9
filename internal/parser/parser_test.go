package parser

import (
	"errors"
	"strings"
	"testing"

	"blogsmith/internal/core"
)

const validContent = "Go channels are typed conduits for communication between goroutines. " +
	"This post walks through buffered and unbuffered channels with examples."

func TestExtract_FencedJSON(t *testing.T) {
	raw := "Here is your blog post:\n```json\n" +
		`{"title": "Go Channels", "content": "` + validContent + `", "excerpt": "A channels primer."}` +
		"\n```\nLet me know if you need changes!"

	draft, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if draft.Title != "Go Channels" {
		t.Errorf("Title = %q, want %q", draft.Title, "Go Channels")
	}
	if draft.Excerpt != "A channels primer." {
		t.Errorf("Excerpt = %q", draft.Excerpt)
	}
}

func TestExtract_FenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n" +
		`{"title": "T", "content": "c", "excerpt": "e"}` +
		"\n```"

	draft, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if draft.Title != "T" {
		t.Errorf("Title = %q, want %q", draft.Title, "T")
	}
}

func TestExtract_FenceInsideContent(t *testing.T) {
	// The content embeds its own fenced code block. The extractor must use
	// the LAST closing fence, not the first one it finds.
	raw := "```json\n" +
		`{"title": "T", "content": "Use:\n` + "\\u0060\\u0060\\u0060go\\nch := make(chan int)\\n\\u0060\\u0060\\u0060" + `", "excerpt": "e"}` +
		"\n```"

	draft, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(draft.Content, "make(chan int)") {
		t.Errorf("Content lost embedded code block: %q", draft.Content)
	}
}

func TestExtract_BareJSONWithSurroundingProse(t *testing.T) {
	raw := `Sure! {"title": "T", "content": "c", "excerpt": "e"} Hope that helps.`

	draft, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if draft.Title != "T" {
		t.Errorf("Title = %q, want %q", draft.Title, "T")
	}
}

func TestExtract_StripsComments(t *testing.T) {
	raw := `{
		// the model annotated its own output
		"title": "T",
		/* multi
		   line */
		"content": "c",
		"excerpt": "e"
	}`

	draft, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if draft.Content != "c" {
		t.Errorf("Content = %q, want %q", draft.Content, "c")
	}
}

func TestExtract_NoJSON(t *testing.T) {
	_, err := Extract("I'm sorry, I can't write that post.")
	if !errors.Is(err, ErrNoJSONFound) {
		t.Errorf("err = %v, want ErrNoJSONFound", err)
	}
}

func TestExtract_InvalidSyntax(t *testing.T) {
	_, err := Extract(`{"title": "T", "content": }`)
	if !errors.Is(err, ErrInvalidSyntax) {
		t.Errorf("err = %v, want ErrInvalidSyntax", err)
	}
}

func TestExtract_TagsAsStringDiscarded(t *testing.T) {
	raw := `{"title": "T", "content": "c", "excerpt": "e", "tags": "go, channels"}`

	draft, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if draft.Tags != nil {
		t.Errorf("Tags = %v, want nil for non-array tags", draft.Tags)
	}
}

func TestValidate(t *testing.T) {
	draft := &core.PostDraft{Title: "T", Content: validContent, Excerpt: "e"}
	if err := Validate(draft); err != nil {
		t.Errorf("Validate failed on complete draft: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	if err := Validate(&core.PostDraft{Content: validContent, Excerpt: "e"}); !errors.Is(err, ErrMissingTitle) {
		t.Errorf("err = %v, want ErrMissingTitle", err)
	}
	if err := Validate(&core.PostDraft{Title: "T", Excerpt: "e"}); !errors.Is(err, ErrMissingContent) {
		t.Errorf("err = %v, want ErrMissingContent", err)
	}
	if err := Validate(&core.PostDraft{Title: "T", Content: validContent}); !errors.Is(err, ErrMissingExcerpt) {
		t.Errorf("err = %v, want ErrMissingExcerpt", err)
	}
}

func TestValidate_ContentLengthBoundary(t *testing.T) {
	short := &core.PostDraft{Title: "T", Content: strings.Repeat("x", MinContentLength-1), Excerpt: "e"}
	if err := Validate(short); !errors.Is(err, ErrContentTooShort) {
		t.Errorf("err = %v, want ErrContentTooShort for %d chars", err, MinContentLength-1)
	}

	exact := &core.PostDraft{Title: "T", Content: strings.Repeat("x", MinContentLength), Excerpt: "e"}
	if err := Validate(exact); err != nil {
		t.Errorf("Validate failed at exactly %d chars: %v", MinContentLength, err)
	}
}

func TestApplyDefaults_MetaFields(t *testing.T) {
	longTitle := strings.Repeat("t", MaxMetaTitleLength+1)
	draft := &core.PostDraft{Title: longTitle, Content: validContent, Excerpt: "Short excerpt."}

	ApplyDefaults(draft, core.Topic{Text: "Go Channels", Category: core.CategoryBackendAPIs})

	if len(draft.MetaTitle) != MaxMetaTitleLength {
		t.Errorf("MetaTitle length = %d, want %d", len(draft.MetaTitle), MaxMetaTitleLength)
	}
	if !strings.HasSuffix(draft.MetaTitle, "...") {
		t.Errorf("MetaTitle %q should end with ellipsis", draft.MetaTitle)
	}
	if draft.MetaDescription != "Short excerpt." {
		t.Errorf("MetaDescription = %q, short excerpt should pass through unchanged", draft.MetaDescription)
	}
}

func TestApplyDefaults_ReadingTime(t *testing.T) {
	draft := &core.PostDraft{Title: "T", Content: "just a few words here", Excerpt: "e"}
	ApplyDefaults(draft, core.Topic{Category: core.CategoryWebDevelopment})
	if draft.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want minimum of 1", draft.ReadingTime)
	}

	long := &core.PostDraft{Title: "T", Content: strings.Repeat("word ", WordsPerMinute*3+1), Excerpt: "e"}
	ApplyDefaults(long, core.Topic{Category: core.CategoryWebDevelopment})
	if long.ReadingTime != 4 {
		t.Errorf("ReadingTime = %d, want 4 (ceil of %d words / %d wpm)", long.ReadingTime, WordsPerMinute*3+1, WordsPerMinute)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	draft := &core.PostDraft{Title: "T", Content: validContent, Excerpt: "e"}
	topic := core.Topic{Text: "Go Channels Deep Dive", Category: core.CategoryBackendAPIs}

	ApplyDefaults(draft, topic)
	first := *draft
	firstTags := append([]string(nil), draft.Tags...)

	ApplyDefaults(draft, topic)
	if draft.MetaTitle != first.MetaTitle || draft.MetaDescription != first.MetaDescription || draft.ReadingTime != first.ReadingTime {
		t.Error("ApplyDefaults changed scalar fields on second run")
	}
	if len(draft.Tags) != len(firstTags) {
		t.Errorf("Tags changed on second run: %v vs %v", draft.Tags, firstTags)
	}
}

func TestTagsFromTopic(t *testing.T) {
	tags := TagsFromTopic("Understanding Goroutines and Channels", core.CategoryBackendAPIs)

	if len(tags) > 6 {
		t.Errorf("got %d tags, want at most 6", len(tags))
	}
	if tags[0] != "backend" {
		t.Errorf("first tag = %q, want category base tag %q", tags[0], "backend")
	}
	for _, tag := range tags {
		if len(tag) == 0 {
			t.Error("empty tag in result")
		}
	}
}

func TestTagsFromTopic_UnknownCategory(t *testing.T) {
	tags := TagsFromTopic("Something", core.Category("mystery"))
	if tags[0] != "programming" {
		t.Errorf("first tag = %q, want generic fallback %q", tags[0], "programming")
	}
}

func TestExtractStringArray(t *testing.T) {
	raw := "```json\n[\"Title One\", \"Title Two\"]\n```"

	items, err := ExtractStringArray(raw)
	if err != nil {
		t.Fatalf("ExtractStringArray failed: %v", err)
	}
	if len(items) != 2 || items[0] != "Title One" {
		t.Errorf("items = %v", items)
	}
}

func TestExtractStringArray_Invalid(t *testing.T) {
	_, err := ExtractStringArray("not an array")
	if !errors.Is(err, ErrInvalidSyntax) {
		t.Errorf("err = %v, want ErrInvalidSyntax", err)
	}
}
