package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/eartask-go/internal/adapters/cli"
)

func main() {
	// A started batch is never cancelled mid-call; an interrupt only makes the
	// remaining calls fail fast.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
