package main

import (
	"context"
	"fmt"
	"os"
)

// mustEngine builds the engine or exits.
func mustEngine() *engine {
	eng, err := buildEngine(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return eng
}

// runStatus prints permission state, settings, and the scheduled queue.
func runStatus() {
	eng := mustEngine()
	ctx := context.Background()

	eng.orch.Initialize(ctx)
	snap := eng.orch.Snapshot()

	fmt.Printf("Platform:     %s\n", eng.cfg.Platform)
	fmt.Printf("Permission:   %s (can ask again: %v)\n", snap.Permission, snap.CanAskAgain)
	fmt.Printf("Push token:   %s\n", orDash(snap.PushToken))
	fmt.Println()
	fmt.Println("Settings:")
	fmt.Printf("  daily devotions:      %v (at %s)\n", snap.Settings.DailyDevotions, snap.Settings.Time)
	fmt.Printf("  prayer updates:       %v\n", snap.Settings.PrayerUpdates)
	fmt.Printf("  community activity:   %v\n", snap.Settings.CommunityActivity)
	fmt.Printf("  spiritual milestones: %v\n", snap.Settings.SpiritualMilestones)
	fmt.Println()

	if len(snap.Scheduled) == 0 {
		fmt.Println("Nothing scheduled.")
		return
	}
	fmt.Println("Scheduled:")
	for _, s := range snap.Scheduled {
		fmt.Printf("  %-22s %s  (next %s)\n",
			s.Tag, s.Trigger.CronSpec(), s.NextFire.Format("Mon 15:04"))
	}
}

// runTest sends the ungated test notification.
func runTest() {
	eng := mustEngine()
	ctx := context.Background()

	eng.orch.Initialize(ctx)
	if err := eng.orch.SendTest(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Test notification sent.")
}

// runCancel clears the scheduled queue.
func runCancel() {
	eng := mustEngine()
	ctx := context.Background()

	if err := eng.orch.CancelAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("All scheduled notifications cancelled.")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
