package reminder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/logger"
	"github.com/mresendiz/racha/internal/storage"
)

var findProcessFunc = ps.FindProcess

// Watcher polls the habit set and sends a notification when a reminder
// comes due. A pid lockfile next to the storage file keeps it to one
// instance per store.
type Watcher struct {
	checker  *Checker
	notifier Notifier
	lockPath string
	interval time.Duration
}

func NewWatcher(store storage.Provider, notifier Notifier, pollSeconds int) *Watcher {
	if pollSeconds < 1 {
		pollSeconds = constants.ReminderPollSeconds
	}
	return &Watcher{
		checker:  NewChecker(store),
		notifier: notifier,
		lockPath: filepath.Join(filepath.Dir(store.GetConfigPath()), constants.WatcherLockfileName),
		interval: time.Duration(pollSeconds) * time.Second,
	}
}

// Run polls until the context is cancelled. It refuses to start when
// another live watcher holds the lockfile.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.acquireLock(); err != nil {
		return err
	}
	defer os.Remove(w.lockPath)

	logger.Info("Reminder watcher started", "interval", w.interval)
	w.checkOnce()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder watcher stopped")
			return nil
		case <-ticker.C:
			w.checkOnce()
		}
	}
}

func (w *Watcher) checkOnce() {
	events, err := w.checker.Check(time.Now())
	if err != nil {
		logger.Warn("Reminder check failed", "error", err)
		return
	}
	for _, e := range events {
		if err := w.notifier.Notify(e.Message()); err != nil {
			logger.Warn("Failed to send notification", "habit", e.HabitID, "error", err)
		}
	}
}

// acquireLock writes this process's pid to the lockfile. A lockfile
// pointing at a live racha process blocks the start; a stale one is
// replaced.
func (w *Watcher) acquireLock() error {
	if content, err := os.ReadFile(w.lockPath); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(content))); err == nil && pid != os.Getpid() {
			if proc, err := findProcessFunc(pid); err == nil && proc != nil &&
				strings.HasPrefix(proc.Executable(), constants.AppName) {
				return fmt.Errorf("another watcher is already running (pid %d)", pid)
			}
		}
		logger.Debug("Replacing stale watcher lockfile", "path", w.lockPath)
	}

	if err := os.MkdirAll(filepath.Dir(w.lockPath), 0700); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	if err := os.WriteFile(w.lockPath, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}
