package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tse155/ytblog/internal"
)

var transcriptOutput string

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [YouTube URL or ID]",
	Short: "Fetch the transcript of a video without generating an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyProviderFlags(cmd, config)

		log := internal.NewLogger(config.Verbose, true)
		defer func() { _ = log.Sync() }()

		app, err := internal.NewApp(cmd.Context(), config, log)
		if err != nil {
			return err
		}
		defer app.Close()

		status := internal.NewStatusLine(config.Quiet, "Fetching transcript...")
		result := app.AcquireTranscript(cmd.Context(), args[0])
		status.Finish()

		if !result.OK {
			return fmt.Errorf("%s", internal.MsgNoTranscript)
		}

		log.Debugw("transcript acquired", "source", result.Source)

		if transcriptOutput != "" {
			if err := os.WriteFile(transcriptOutput, []byte(result.Text), 0o644); err != nil {
				return fmt.Errorf("writing transcript: %w", err)
			}
			fmt.Printf("Transcript written to %s (source: %s)\n", transcriptOutput, result.Source)
			return nil
		}

		fmt.Println(result.Text)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcriptOutput, "output", "o", "", "Write the transcript to a file instead of stdout")
	rootCmd.AddCommand(transcribeCmd)
}
