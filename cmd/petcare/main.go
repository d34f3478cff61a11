package main

import (
	"context"
	"os"
	"os/signal"

	"pet-care-tasks/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
