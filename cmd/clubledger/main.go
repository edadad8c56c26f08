package main

import (
	"os"

	"github.com/mmynk/clubledger/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
