package main

import (
	"os"

	"github.com/clubdeck-dev/clubdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
