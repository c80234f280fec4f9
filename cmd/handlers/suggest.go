package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/config"
	"blogsmith/internal/llm"
	"blogsmith/internal/logger"
)

// NewSuggestCmd creates the title suggestion command
func NewSuggestCmd() *cobra.Command {
	suggestCmd := &cobra.Command{
		Use:   "suggest [topic]",
		Short: "Suggest blog post titles for a topic",
		Long: `Ask the model for alternative SEO-friendly titles for a topic without
generating a full post.

Example:
  blogsmith suggest "Go generics in practice"
  blogsmith suggest --count 10 "Kubernetes operators"`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			count, _ := cmd.Flags().GetInt("count")
			if err := runSuggest(cmd.Context(), args[0], count); err != nil {
				logger.Error("Failed to suggest titles", err)
				os.Exit(1)
			}
		},
	}

	suggestCmd.Flags().IntP("count", "n", 5, "number of titles to suggest")

	return suggestCmd
}

func runSuggest(ctx context.Context, topic string, count int) error {
	client, err := llm.NewClient(config.GetGeminiModel())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	titles, err := client.GenerateTitleSuggestions(ctx, topic, count)
	if err != nil {
		return err
	}
	if len(titles) == 0 {
		fmt.Println("No suggestions returned.")
		return nil
	}

	fmt.Printf("💡 Title suggestions for %q\n", topic)
	for i, title := range titles {
		fmt.Printf("   %d. %s\n", i+1, title)
	}
	return nil
}
