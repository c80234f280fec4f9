package core

import "time"

// Author is the byline attached to every generated post.
const Author = "Richad Ali"

// Category identifies one of the fixed content categories the blog rotates through.
type Category string

const (
	CategoryWebDevelopment Category = "web-development"
	CategoryReactFrontend  Category = "react-frontend"
	CategoryBackendAPIs    Category = "backend-apis"
	CategoryDevOpsCloud    Category = "devops-cloud"
	CategoryAIMachine      Category = "ai-ml"
	CategoryCareerTips     Category = "career-tips"
)

// Categories lists every category in rotation order. The daily scheduler
// indexes into this slice by weekday, so the order is load-bearing.
var Categories = []Category{
	CategoryWebDevelopment,
	CategoryReactFrontend,
	CategoryBackendAPIs,
	CategoryDevOpsCloud,
	CategoryAIMachine,
	CategoryCareerTips,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Topic is one entry of the static topic pool: the text handed to the text
// provider plus the category it belongs to.
type Topic struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// PostDraft is the fully assembled, not-yet-persisted blog post produced by
// the generation pipeline. The json tags mirror the shape the text provider
// is prompted to return; the trailing metadata fields are filled in during
// assembly and never come from the provider.
type PostDraft struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	Tags            []string  `json:"tags"`
	ReadingTime     int       `json:"reading_time"`
	FeaturedImage   string    `json:"featured_image"`
	Category        Category  `json:"category"`
	GeneratedByAI   bool      `json:"generated_by_ai"`
	AIPrompt        string    `json:"ai_prompt"`
	Author          string    `json:"author"`
	DateGenerated   time.Time `json:"date_generated"`
}

// StoredPost is the persisted summary row of a blog post, as listed by the
// store. The full content stays in the database.
type StoredPost struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Category      Category  `json:"category"`
	GeneratedByAI bool      `json:"generated_by_ai"`
	DateCreated   time.Time `json:"date_created"`
}

// SchedulerState is a point-in-time snapshot of the daily scheduler.
type SchedulerState struct {
	IsRunning bool       `json:"is_running"`
	LastRun   *time.Time `json:"last_run"`
	NextRun   *time.Time `json:"next_run"`
	Schedule  string     `json:"schedule"`
	Timezone  string     `json:"timezone"`
}
