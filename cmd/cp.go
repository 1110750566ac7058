package cmd

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tse155/ytblog/internal"
)

var cpCmd = &cobra.Command{
	Use:   "cp",
	Short: "Copy the most recent article to the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := internal.OpenStore(config.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening article store: %w", err)
		}
		defer store.Close()

		article, err := store.Latest(cmd.Context(), localOwner)
		if errors.Is(err, internal.ErrNotFound) {
			return fmt.Errorf("no articles yet, generate one first")
		}
		if err != nil {
			return fmt.Errorf("loading latest article: %w", err)
		}

		content := fmt.Sprintf("# %s\n\n%s\n", article.Title, article.Content)
		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}

		fmt.Printf("Copied %q to clipboard\n", article.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
