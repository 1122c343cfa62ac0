package reminder

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/mresendiz/racha/internal/constants"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(message string) error
}

// DesktopNotifier shells out to the platform notification command.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(message string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", constants.AppName, message).Run()
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, constants.AppName)
		return exec.Command("osascript", "-e", script).Run()
	default:
		return fmt.Errorf("desktop notifications are not supported on %s", runtime.GOOS)
	}
}

// StdoutNotifier prints reminders instead of sending them. Used by the
// watcher's dry-run mode and as the fallback when the desktop command
// is unavailable.
type StdoutNotifier struct{}

func (StdoutNotifier) Notify(message string) error {
	fmt.Println(message)
	return nil
}
