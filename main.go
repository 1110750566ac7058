package main

import (
	"os"

	"github.com/tse155/ytblog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
