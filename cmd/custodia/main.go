package main

import (
	"os"

	"github.com/custodia-dev/custodia/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
