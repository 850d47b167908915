package main

import (
	"os"

	"github.com/marginote/shelfsync/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
