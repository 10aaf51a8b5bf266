package main

import (
	"fmt"
	"os"

	"media-scribe/cmd/scribe/cmd"
	"media-scribe/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd.Execute()
}
