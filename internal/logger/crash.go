package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	// MaxCrashLogs is the maximum number of crash logs kept on disk.
	MaxCrashLogs = 10

	crashPrefix = "crash_"
	crashSuffix = ".json"
)

// CrashContext stores what the process was doing when it panicked.
type CrashContext struct {
	mu      sync.RWMutex
	dir     string
	version string
	command string
	args    []string
}

var globalContext = &CrashContext{}

// SetDir sets the directory crash logs are written to.
func SetDir(dir string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.dir = dir
}

// SetVersion records the build version.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand records the command path and its arguments.
func SetCommand(cmd string, args []string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
	globalContext.args = slices.Clone(args)
}

// CrashLog is one recovered panic.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	Args       []string  `json:"args,omitempty"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic recovers a panic, saves a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		entry := newCrashLog(r)
		path, err := writeCrashLog(entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, entry.StackTrace)
		} else {
			fmt.Fprintf(os.Stderr, "\ntasklist crashed unexpectedly.\nA crash log has been saved to:\n  %s\n\n", path)
		}
		os.Exit(1)
	}
}

func newCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now().UTC(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		Args:       slices.Clone(globalContext.args),
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func crashDir() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	if globalContext.dir == "" {
		return filepath.Join(os.TempDir(), "tasklist", "crash_logs")
	}
	return globalContext.dir
}

func crashLogName(t time.Time) string {
	return crashPrefix + t.Format("20060102_150405.000") + crashSuffix
}

func writeCrashLog(entry CrashLog) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode crash log: %w", err)
	}
	path := filepath.Join(dir, crashLogName(entry.Timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	if err := pruneCrashLogs(dir, MaxCrashLogs); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to prune old crash logs: %v\n", err)
	}
	return path, nil
}

// pruneCrashLogs keeps the newest keep logs in dir. Names sort chronologically.
func pruneCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogs(dir)
	if err != nil || len(logs) <= keep {
		return err
	}
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), crashPrefix) && strings.HasSuffix(e.Name(), crashSuffix) {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}

// ListCrashLogs returns the saved crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(crashDir())
}
