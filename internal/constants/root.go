package constants

const (
	AppName           = "racha"
	DefaultConfigPath = "~/.config/racha/racha.db"
	Version           = "v0.3.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard reminder time format (HH:MM)
	TimeFormat = "15:04"

	// Progression defaults; overridable via config.toml
	BaseHabitSlots        = 3
	ExtraHabitSlots       = 2
	StreakUnlockThreshold = 7

	// HistoryWindowDays is the size of the rolling streak history view
	HistoryWindowDays = 30

	// Reminder watcher
	ReminderPollSeconds = 20
	WatcherLockfileName = "racha-watch.lock"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "racha-"
)

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateHabits SessionState = iota
	StateHistory
	StateProgress
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
	StateCelebration
)
