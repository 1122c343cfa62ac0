package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mresendiz/racha/internal/reminder"
)

type WatchCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *WatchCmd) Run(ctx *Context) error {
	if !c.DryRun && !ctx.Config.Reminders.NotificationsEnabled() {
		fmt.Println("Notifications are disabled in config.")
		return nil
	}

	var notifier reminder.Notifier = reminder.DesktopNotifier{}
	if c.DryRun {
		notifier = reminder.StdoutNotifier{}
	}

	watcher := reminder.NewWatcher(ctx.Store, notifier, ctx.Config.Reminders.PollSeconds)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for reminders every %ds. Ctrl-C to stop.\n", ctx.Config.Reminders.PollSeconds)
	return watcher.Run(runCtx)
}
