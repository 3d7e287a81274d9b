package main

import (
	"os"

	"github.com/hearthline-ai/rampart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
