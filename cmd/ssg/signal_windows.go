//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels the build on Ctrl-C. SIGTERM does not exist on
// Windows. Call stop() to restore default signal handling.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
