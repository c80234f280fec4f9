package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/config"
	"blogsmith/internal/logger"
	"blogsmith/internal/store"
)

// NewPostsCmd creates the stored-posts listing command
func NewPostsCmd() *cobra.Command {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "List recently generated blog posts",
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			if err := runPosts(limit); err != nil {
				logger.Error("Failed to list posts", err)
				os.Exit(1)
			}
		},
	}

	postsCmd.Flags().IntP("limit", "n", 10, "maximum number of posts to show")

	return postsCmd
}

func runPosts(limit int) error {
	st, err := store.NewStore(config.GetStore().Path)
	if err != nil {
		return fmt.Errorf("failed to open post store: %w", err)
	}
	defer st.Close()

	posts, err := st.ListRecent(limit)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Println("No posts generated yet.")
		return nil
	}

	fmt.Printf("📝 Recent Posts (%d)\n", len(posts))
	for _, p := range posts {
		marker := "  "
		if p.GeneratedByAI {
			marker = "🤖"
		}
		fmt.Printf("   %s %s  [%s]  %s\n", marker, p.DateCreated.Format("2006-01-02"), p.Category, p.Title)
		fmt.Printf("      /blog/%s\n", p.Slug)
	}

	return nil
}
