package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/logger"
)

// NewBacklogCmd creates the bulk generation command
func NewBacklogCmd() *cobra.Command {
	backlogCmd := &cobra.Command{
		Use:   "backlog",
		Short: "Generate a backlog of blog posts across all categories",
		Long: `Generate several blog posts in one run, rotating through the category
list. Posts are generated sequentially with a short pause between them.
Individual failures are logged and skipped.

Example:
  blogsmith backlog --count 6`,
		Run: func(cmd *cobra.Command, args []string) {
			count, _ := cmd.Flags().GetInt("count")
			if err := runBacklog(cmd.Context(), count); err != nil {
				logger.Error("Backlog generation failed", err)
				os.Exit(1)
			}
		},
	}

	backlogCmd.Flags().IntP("count", "n", 6, "number of posts to generate")

	return backlogCmd
}

func runBacklog(ctx context.Context, count int) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	created, err := p.scheduler.GenerateBacklog(ctx, count)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Backlog complete: %d/%d posts generated\n", created, count)
	return nil
}
