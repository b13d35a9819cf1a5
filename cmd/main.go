package main

import (
	"context"
	"os"

	"github.com/desertthunder/tunevault/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{
		Logger:     logger,
		ConfigPath: "config.toml",
	})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
