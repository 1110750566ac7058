package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the directories and files used by ytblog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config:   %s\n", config.ConfigDir)
		fmt.Printf("Data:     %s\n", config.DataDir)
		fmt.Printf("Cache:    %s\n", config.CacheDir)
		fmt.Printf("Scratch:  %s\n", config.ScratchDir)
		fmt.Printf("Database: %s\n", config.DatabasePath)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
