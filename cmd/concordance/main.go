package main

import (
	"os"

	"github.com/gcbaptista/go-concordance/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
