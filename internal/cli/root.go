package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mresendiz/racha/internal/backup"
	"github.com/mresendiz/racha/internal/config"
	"github.com/mresendiz/racha/internal/habits"
	"github.com/mresendiz/racha/internal/logger"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Habits *habits.Service
	Config *config.Config
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// confirm prints a y/N prompt and reads one line of input. Anything
// other than y/yes counts as a no, including EOF.
func confirm(in io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// resolveHabit finds a habit by name first, then by id, so both
// `racha done Read` and `racha done <uuid>` work.
func (c *Context) resolveHabit(ref string) (models.Habit, error) {
	if h, err := c.Habits.GetByName(ref); err == nil {
		return h, nil
	}
	return c.Habits.Get(ref)
}

// ParseInterval maps user input onto a recurrence interval, accepting
// short forms.
func ParseInterval(s string) (models.Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "d", "daily":
		return models.IntervalDaily, nil
	case "w", "weekly":
		return models.IntervalWeekly, nil
	case "m", "monthly":
		return models.IntervalMonthly, nil
	default:
		return "", fmt.Errorf("invalid interval %q (expected daily, weekly or monthly)", s)
	}
}

// FormatInterval renders an interval for display.
func FormatInterval(interval models.Interval) string {
	switch interval {
	case models.IntervalDaily:
		return "daily"
	case models.IntervalWeekly:
		return "weekly"
	case models.IntervalMonthly:
		return "monthly"
	default:
		return string(interval)
	}
}
