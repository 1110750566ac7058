package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tse155/ytblog/internal"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List previously generated articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := internal.OpenStore(config.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening article store: %w", err)
		}
		defer store.Close()

		articles, err := store.ListByOwner(cmd.Context(), localOwner)
		if err != nil {
			return fmt.Errorf("listing articles: %w", err)
		}
		if len(articles) == 0 {
			fmt.Println("No articles yet. Generate one with: ytblog <YouTube URL>")
			return nil
		}

		for _, article := range articles {
			fmt.Printf("%4d  %s  %s\n", article.ID, article.CreatedAt.Format("2006-01-02 15:04"), article.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(articlesCmd)
}
