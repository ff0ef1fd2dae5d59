package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/orbits.txt"

// DefaultHistory is how many lines a Logger keeps in memory for the console.
const DefaultHistory = 500

// Logger keeps the most recent lines in memory and appends every line to a file on disk.
// An empty path disables the file.
type Logger struct {
	mu      sync.Mutex
	path    string
	max     int
	lines   []string
	now     func() time.Time
	onWrite func(string)
}

// New returns a Logger writing to path and ensures its directory exists.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, max: DefaultHistory, lines: make([]string, 0), now: time.Now}
}

// SetHistory changes how many lines are kept in memory. n <= 0 keeps everything.
func (l *Logger) SetHistory(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.max = n
	l.trim()
}

// Mirror registers f to receive every stamped line, e.g. to echo to stdout in headless runs.
func (l *Logger) Mirror(f func(string)) {
	l.mu.Lock()
	l.onWrite = f
	l.mu.Unlock()
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with [timestamp].
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.trim()
	mirror := l.onWrite
	l.mu.Unlock()

	if mirror != nil {
		mirror(stamped)
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// caller holds mu
func (l *Logger) trim() {
	if l.max > 0 && len(l.lines) > l.max {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-l.max:]...)
	}
}
