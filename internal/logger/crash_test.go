package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCrashHandler_SetContext(t *testing.T) {
	globalContext = &CrashContext{}

	SetDir("/tmp/tasklist-crash")
	SetVersion("1.0.0-test")
	args := []string{"abc123"}
	SetCommand("tasklist done", args)
	args[0] = "mutated"

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	if globalContext.dir != "/tmp/tasklist-crash" {
		t.Errorf("Expected dir '/tmp/tasklist-crash', got '%s'", globalContext.dir)
	}
	if globalContext.version != "1.0.0-test" {
		t.Errorf("Expected version '1.0.0-test', got '%s'", globalContext.version)
	}
	if globalContext.command != "tasklist done" {
		t.Errorf("Expected command 'tasklist done', got '%s'", globalContext.command)
	}
	if len(globalContext.args) != 1 || globalContext.args[0] != "abc123" {
		t.Errorf("Expected args to be copied, got %v", globalContext.args)
	}
}

func TestCrashHandler_NewCrashLog(t *testing.T) {
	globalContext = &CrashContext{version: "1.0.0", command: "tasklist add"}

	log := newCrashLog("boom")

	if log.PanicValue != "boom" {
		t.Errorf("Expected PanicValue 'boom', got '%s'", log.PanicValue)
	}
	if log.Version != "1.0.0" || log.Command != "tasklist add" {
		t.Errorf("Unexpected context: %+v", log)
	}
	if log.StackTrace == "" || log.GoVersion == "" {
		t.Error("Expected stack trace and Go version")
	}
}

func TestCrashHandler_WriteCrashLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crash_logs")
	globalContext = &CrashContext{dir: dir}

	path, err := writeCrashLog(CrashLog{Timestamp: time.Now(), PanicValue: "test panic"})
	if err != nil {
		t.Fatalf("writeCrashLog failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Expected log in %s, got %s", dir, path)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 crash log, got %d", len(logs))
	}

	data, err := os.ReadFile(logs[0])
	if err != nil {
		t.Fatalf("read crash log: %v", err)
	}
	var got CrashLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("crash log is not JSON: %v", err)
	}
	if got.PanicValue != "test panic" {
		t.Errorf("Expected panic value to round-trip, got '%s'", got.PanicValue)
	}
}

func TestCrashHandler_PruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := range MaxCrashLogs + 5 {
		name := fmt.Sprintf("crash_20250101_1200%02d.000.json", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("create test file: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := pruneCrashLogs(dir, MaxCrashLogs); err != nil {
		t.Fatalf("pruneCrashLogs failed: %v", err)
	}

	logs, err := listCrashLogs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != MaxCrashLogs {
		t.Fatalf("Expected %d crash logs after pruning, got %d", MaxCrashLogs, len(logs))
	}
	if !strings.HasSuffix(logs[0], "crash_20250101_120005.000.json") {
		t.Errorf("Expected oldest survivor to be #5, got %s", logs[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("Expected unrelated files to be left alone")
	}
}

func TestCrashHandler_DefaultDir(t *testing.T) {
	globalContext = &CrashContext{}
	want := filepath.Join(os.TempDir(), "tasklist", "crash_logs")
	if got := crashDir(); got != want {
		t.Errorf("Expected default dir '%s', got '%s'", want, got)
	}
}
