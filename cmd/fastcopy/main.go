package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

func main() {
	// Console logging is reconfigured with the real verbosity once flags
	// are parsed; this covers everything printed before that.
	setupLogging(0)

	// A signal cancels the batch; in-flight chunk loops notice and stop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if !errors.Is(err, errEntriesFailed) {
			zerolog.Ctx(ctx).Error().Msg(err.Error())
		}
		os.Exit(1)
	}
}
