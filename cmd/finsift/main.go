package main

import (
	"os"

	"github.com/finsift-dev/finsift/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
