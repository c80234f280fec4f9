package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
)

// NewGenerateCmd creates the one-shot generation command
func NewGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and store a single blog post",
		Long: `Generate one complete blog post and store it immediately.

Without flags a random unused topic is chosen. Use --category to restrict
the topic pool, or --topic to supply your own topic text.

Example:
  blogsmith generate
  blogsmith generate --category devops-cloud
  blogsmith generate --topic "Understanding Go Channels" --category backend-apis`,
		Run: func(cmd *cobra.Command, args []string) {
			category, _ := cmd.Flags().GetString("category")
			topic, _ := cmd.Flags().GetString("topic")
			if err := runGenerate(cmd.Context(), category, topic); err != nil {
				logger.Error("Failed to generate blog post", err)
				os.Exit(1)
			}
		},
	}

	generateCmd.Flags().StringP("category", "c", "", "category to pick the topic from")
	generateCmd.Flags().StringP("topic", "t", "", "explicit topic text (skips the topic pool)")

	return generateCmd
}

func runGenerate(ctx context.Context, category, topicText string) error {
	if category != "" && !core.ValidCategory(category) {
		return fmt.Errorf("unknown category %q, valid categories: %s",
			category, strings.Join(categoryNames(), ", "))
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	draft, slug, err := p.scheduler.GenerateManual(ctx, core.Category(category), topicText)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Blog post generated\n\n")
	fmt.Printf("   Title:        %s\n", draft.Title)
	fmt.Printf("   Slug:         %s\n", slug)
	fmt.Printf("   Category:     %s\n", draft.Category)
	fmt.Printf("   Tags:         %s\n", strings.Join(draft.Tags, ", "))
	fmt.Printf("   Reading time: %d min\n", draft.ReadingTime)
	fmt.Printf("   Image:        %s\n", draft.FeaturedImage)

	return nil
}

func categoryNames() []string {
	names := make([]string, len(core.Categories))
	for i, c := range core.Categories {
		names[i] = string(c)
	}
	return names
}
