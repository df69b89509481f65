package main

import (
	"os"

	"github.com/digital-guidance/guidance-api/cmd/guidancectl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
