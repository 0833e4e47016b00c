// Package signal ties a context to process interrupts.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	clog "github.com/xrsl/atscv/pkg/log"
)

// WithInterrupt returns a child of parent that is cancelled on SIGINT or
// SIGTERM. A blocked LLM call observes the cancellation through its context.
func WithInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			clog.Warn("interrupted, abandoning run", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
