package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// runDaemon keeps the recurring trigger runner alive. Scheduled
// notifications only fire while a process hosts them; this command is that
// process. It reconciles on startup and then blocks until interrupted.
func runDaemon() {
	eng, err := buildEngine(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = eng.log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.orch.Initialize(ctx)
	snap := eng.orch.Snapshot()
	eng.log.Info("selah daemon ready",
		zap.Bool("permission", snap.HasPermission),
		zap.Int("scheduled", len(snap.Scheduled)))

	if eng.local == nil {
		// Web variant has no local triggers; nothing to host.
		eng.log.Info("platform has no local scheduling, idling until shutdown")
		<-ctx.Done()
		return
	}

	eng.local.Run(ctx)
	eng.log.Info("selah daemon stopped")
}
