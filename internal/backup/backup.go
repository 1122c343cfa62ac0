package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/logger"
)

// Info describes one backup file.
type Info struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Manager snapshots the storage file into a sibling backups directory
// and keeps the newest MaxBackups of them. Both storage backends are
// supported: SQLite files are copied through VACUUM INTO, JSON files
// are plain copies.
type Manager struct {
	srcPath   string
	backupDir string
}

func NewManager(storagePath string) *Manager {
	return &Manager{
		srcPath:   storagePath,
		backupDir: filepath.Join(filepath.Dir(storagePath), constants.BackupDirName),
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

// CreateBackup writes a timestamped snapshot and rotates old ones.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.srcPath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage does not exist: %s", m.srcPath)
	}

	backupPath, err := m.nextBackupPath(time.Now())
	if err != nil {
		return "", err
	}

	if isSQLite(m.srcPath) {
		err = m.snapshotSQLite(backupPath)
	} else {
		err = copyFile(m.srcPath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up storage: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextBackupPath builds a timestamped filename, appending a counter on
// collision.
func (m *Manager) nextBackupPath(now time.Time) (string, error) {
	ext := filepath.Ext(m.srcPath)
	stamp := now.Format("20060102-150405")

	name := fmt.Sprintf("%s%s%s", constants.BackupFilePrefix, stamp, ext)
	path := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name = fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, ext)
		path = filepath.Join(m.backupDir, name)
	}
}

// snapshotSQLite copies the database through VACUUM INTO, which is safe
// against concurrent writers. Falls back to a file copy on SQLite
// builds without VACUUM INTO support.
func (m *Manager) snapshotSQLite(destPath string) error {
	db, err := sql.Open("sqlite", m.srcPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.srcPath, destPath)
	}
	return nil
}

// List returns the available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.BackupFilePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:    filepath.Join(m.backupDir, entry.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the storage file with a backup. The current file is
// snapshotted first, then the backup is swapped in with an atomic
// rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.srcPath); err == nil {
		pre, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
		logger.Info("Backed up current storage before restore", "path", pre)
	}

	tempPath := m.srcPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.srcPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore storage: %w", err)
	}
	return nil
}

func (m *Manager) verify(path string) error {
	if isSQLite(path) {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return err
		}
		defer db.Close()
		var count int
		return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("not a valid JSON document")
	}
	return nil
}

func isSQLite(path string) bool {
	return filepath.Ext(path) == ".db"
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
