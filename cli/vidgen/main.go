package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	vidgencmder "github.com/papercomputeco/vidgen/cmd/vidgen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := vidgencmder.NewVidgenCmd()
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(vidgencmder.ExitCode(err))
	}
}
