// cmd/sentimeter/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	code := run(os.Args[1:], stdio{
		in:    os.Stdin,
		out:   os.Stdout,
		err:   os.Stderr,
		inTTY: term.IsTerminal(int(os.Stdin.Fd())),
	})
	os.Exit(code)
}

// rootContextWithSignals creates a root context with optional timeout and signal cancellation.
// The returned cancel function also stops the signal handler.
func rootContextWithSignals(timeout time.Duration) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeout > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), timeout)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanup
}
