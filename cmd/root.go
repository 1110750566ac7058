package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tse155/ytblog/internal"
)

var config *internal.Config

// localOwner tags articles generated from the CLI.
const localOwner = "local"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytblog [YouTube URL or ID]",
	Short: "Turn YouTube videos into written articles",
	Long: `ytblog turns a YouTube video into a written article.

It acquires the spoken content as text - from captions, scraped
subtitles, or Whisper audio transcription - and asks a language
model to synthesize a summary and a title from it.`,
	Example: `  # Generate an article from a YouTube video
  ytblog "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytblog tAP1eZYEuKA

  # Use Gemini instead of OpenAI
  ytblog tAP1eZYEuKA --provider gemini

  # Run the HTTP API
  ytblog serve`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyProviderFlags(cmd, config)

		log := internal.NewLogger(config.Verbose, true)
		defer func() { _ = log.Sync() }()

		app, err := internal.NewApp(cmd.Context(), config, log)
		if err != nil {
			return err
		}
		if err := app.OpenStore(); err != nil {
			log.Warnw("article store unavailable", "error", err)
		}
		defer app.Close()

		status := internal.NewStatusLine(config.Quiet, "Generating article...")
		outcome := app.Generate(cmd.Context(), args[0])
		status.Finish()

		switch outcome.Status {
		case internal.StatusOK:
			if store := app.Store(); store != nil {
				stored := &internal.StoredArticle{
					Owner:     localOwner,
					Title:     outcome.Article.Title,
					SourceURL: args[0],
					Content:   outcome.Article.Summary,
				}
				if _, err := store.Save(cmd.Context(), stored); err != nil {
					log.Warnw("failed to save article", "error", err)
				}
			}
			return printArticle(outcome.Article)
		default:
			return fmt.Errorf("%s", outcome.Message)
		}
	},
}

// printArticle renders the article as markdown when stdout is a terminal,
// plain text otherwise.
func printArticle(article *internal.Article) error {
	content := fmt.Sprintf("# %s\n\n%s\n", article.Title, article.Summary)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		rendered, err := internal.RenderMarkdown(content)
		if err != nil {
			return fmt.Errorf("rendering article: %w", err)
		}
		fmt.Println(rendered)
		return nil
	}

	fmt.Println(content)
	return nil
}

// applyProviderFlags copies the provider/model flags into the config when
// they were explicitly set.
func applyProviderFlags(cmd *cobra.Command, config *internal.Config) {
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		config.Provider = provider
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		switch config.Provider {
		case internal.ProviderGemini:
			config.GeminiModel = model
		default:
			config.OpenAIModel = model
		}
	}
	config.Quiet, _ = cmd.Flags().GetBool("quiet")
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		config.Verbose = true
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config = internal.InitConfig()

	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// Graceful shutdown: cancel in-flight work, then purge scratch audio.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal. Cleaning up and shutting down...")
		cancel()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cleanupCancel()

		cleanupDone := make(chan struct{})
		go func() {
			if err := internal.CleanupScratchDir(config.ScratchDir); err != nil {
				fmt.Fprintf(os.Stderr, "Error cleaning up scratch files: %v\n", err)
			}
			close(cleanupDone)
		}()

		select {
		case <-cleanupDone:
		case <-cleanupCtx.Done():
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out, forcing exit")
		}

		os.Exit(0)
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().String("provider", "", "Generative provider (openai or gemini)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model to use for the selected provider")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
