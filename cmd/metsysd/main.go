// Package main is the metsysd command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/axondata/metsysd"
	"github.com/axondata/metsysd/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := cli.NewRootCmd(metsysd.Version)
	cmd.SetContext(ctx)

	err := cli.Execute(cmd)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
