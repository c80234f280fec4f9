package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/config"
	"blogsmith/internal/logger"
	"blogsmith/internal/store"
	"blogsmith/internal/topics"
)

// NewTopicsCmd creates the topic pool inspection command
func NewTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "Show the topic pool and how much of it has been used",
		Long: `List the built-in topic categories with their topic counts, and report
how many topics have already been turned into posts.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runTopics(); err != nil {
				logger.Error("Failed to inspect topics", err)
				os.Exit(1)
			}
		},
	}
}

func runTopics() error {
	selector := topics.NewSelector()

	// Topic history lives alongside the posts, so a missing database just
	// means nothing has been used yet.
	if st, err := store.NewStore(config.GetStore().Path); err == nil {
		if prompts, err := st.AllUsedPromptTexts(); err == nil {
			selector.Rehydrate(prompts)
		}
		st.Close()
	}

	fmt.Println("📚 Topic Pool")
	total := 0
	for _, info := range selector.Categories() {
		fmt.Printf("   %-18s %d topics\n", string(info.Category), info.TopicCount)
		total += info.TopicCount
	}
	fmt.Printf("\n   Total: %d topics, %d used\n", total, selector.UsedCount())

	return nil
}
