package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var numberedFileRegex = regexp.MustCompile(`app-\d{4}-W\d{2}_(\d{2})\.log$`)

// RotatingLogger writes to one log file per ISO week, starting a numbered
// file when the size limit is reached. Old files are removed by
// CleanupOldLogs, which the scheduler runs daily.
type RotatingLogger struct {
	logDir      string
	currentFile *os.File
	currentWeek string
	retention   time.Duration
	maxFileSize int64
	currentSize atomic.Int64
	mu          sync.Mutex
	now         func() time.Time
}

// NewRotatingLogger creates a rotating logger. maxFileSize <= 0 disables the
// size limit.
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Open creates the log directory and opens the file for the current week
func (rl *RotatingLogger) Open() error {
	if err := os.MkdirAll(rl.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", rl.logDir, err)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.doRotate(getWeekKey(rl.now()), false)
}

// doRotate opens the file to write to (caller must hold the lock)
func (rl *RotatingLogger) doRotate(targetWeek string, sizeExceeded bool) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file during rotation: %v\n", err)
		}
		rl.currentFile = nil
	}

	fileName := rl.pickLogFile(targetWeek, sizeExceeded)
	logPath := filepath.Join(rl.logDir, fileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.currentFile = file
	rl.currentWeek = targetWeek
	rl.currentSize.Store(0)
	if info, err := file.Stat(); err == nil {
		rl.currentSize.Store(info.Size())
	}

	return nil
}

// pickLogFile returns the latest file of the week while it has room,
// otherwise the next numbered file
func (rl *RotatingLogger) pickLogFile(targetWeek string, sizeExceeded bool) string {
	baseName := fmt.Sprintf("app-%s.log", targetWeek)
	highest, lastPath, lastSize := rl.findHighestNumberedFile(targetWeek)

	if !sizeExceeded {
		if lastPath == "" {
			info, err := os.Stat(filepath.Join(rl.logDir, baseName))
			if err != nil || rl.maxFileSize <= 0 || info.Size() < rl.maxFileSize {
				return baseName
			}
		} else if rl.maxFileSize <= 0 || lastSize < rl.maxFileSize {
			return filepath.Base(lastPath)
		}
	}

	return fmt.Sprintf("app-%s_%02d.log", targetWeek, highest+1)
}

// findHighestNumberedFile returns the highest sequence number for the week
// with its path and size
func (rl *RotatingLogger) findHighestNumberedFile(targetWeek string) (int, string, int64) {
	pattern := fmt.Sprintf("app-%s_??.log", targetWeek)
	matches, _ := filepath.Glob(filepath.Join(rl.logDir, pattern))

	highest := 0
	var lastPath string
	var lastSize int64

	for _, match := range matches {
		sub := numberedFileRegex.FindStringSubmatch(filepath.Base(match))
		if len(sub) < 2 {
			continue
		}
		num, _ := strconv.Atoi(sub[1])
		if num <= highest {
			continue
		}
		highest = num
		lastPath = match
		lastSize = 0
		if info, err := os.Stat(match); err == nil {
			lastSize = info.Size()
		}
	}

	return highest, lastPath, lastSize
}

// Write writes p to the current file, rotating first on a week change or
// when p would push the file past the size limit
func (rl *RotatingLogger) Write(p []byte) (n int, err error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	currentWeek := getWeekKey(rl.now())
	weekChanged := rl.currentWeek != currentWeek
	sizeExceeded := false
	if rl.maxFileSize > 0 && !weekChanged && rl.currentFile != nil {
		size := rl.currentSize.Load()
		sizeExceeded = size > 0 && size+int64(len(p)) > rl.maxFileSize
	}

	if weekChanged || sizeExceeded || rl.currentFile == nil {
		if err = rl.doRotate(currentWeek, sizeExceeded); err != nil {
			return 0, err
		}
	}

	n, err = rl.currentFile.Write(p)
	rl.currentSize.Add(int64(n))
	return n, err
}

// CleanupOldLogs removes log files older than the retention period
func (rl *RotatingLogger) CleanupOldLogs() error {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := rl.now().Add(-rl.retention)
	var deletedCount int

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rl.logDir, entry.Name())); err == nil {
				deletedCount++
			}
		}
	}

	if deletedCount > 0 {
		// Console only, the file handler may be the one being cleaned
		fmt.Printf("Cleaned up %d old log files\n", deletedCount)
	}

	return nil
}

// Close closes the current log file
func (rl *RotatingLogger) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile == nil {
		return nil
	}
	err := rl.currentFile.Close()
	rl.currentFile = nil
	return err
}
