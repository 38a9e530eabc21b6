// Package transfer exports tasks to, and imports tasks from, JSON and YAML documents.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/tasklist/internal/task"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DocumentVersion is written into every export.
const DocumentVersion = 1

// Document is the exported file layout. Import also accepts a bare task list.
type Document struct {
	Version    int         `json:"version" yaml:"version"`
	ExportedAt time.Time   `json:"exportedAt" yaml:"exportedAt"`
	Tasks      []task.Task `json:"tasks" yaml:"tasks"`
}

// Hooks for tests.
var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// ParseFormat parses a format name. "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
}

// FormatFromPath infers the format from a file extension, falling back to def.
func FormatFromPath(path string, def Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return def
}

// Export writes tasks to w as a Document.
func Export(w io.Writer, tasks []task.Task, format Format) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	doc := Document{Version: DocumentVersion, ExportedAt: now(), Tasks: tasks}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Import reads a Document or a bare task list from r. Missing ids are
// generated, missing timestamps are set to now and empty enums get their
// defaults. Every task must then be valid and ids must be unique.
func Import(r io.Reader, format Format) ([]task.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	var tasks []task.Task
	switch format {
	case FormatJSON:
		tasks, err = decodeJSON(data)
	case FormatYAML:
		tasks, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return normalize(tasks)
}

func decodeJSON(data []byte) ([]task.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []task.Task
		err := json.Unmarshal(trimmed, &tasks)
		return tasks, err
	}
	var doc Document
	err := json.Unmarshal(trimmed, &doc)
	return doc.Tasks, err
}

func decodeYAML(data []byte) ([]task.Task, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	if root.Content[0].Kind == yaml.SequenceNode {
		var tasks []task.Task
		err := root.Content[0].Decode(&tasks)
		return tasks, err
	}
	var doc Document
	err := root.Content[0].Decode(&doc)
	return doc.Tasks, err
}

func normalize(tasks []task.Task) ([]task.Task, error) {
	out := make([]task.Task, 0, len(tasks))
	seen := make(map[string]int, len(tasks))
	ts := now()

	for i, t := range tasks {
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" {
			t.ID = newID()
		}
		if t.Priority == "" {
			t.Priority = task.DefaultPriority
		}
		if t.Status == "" {
			t.Status = task.DefaultStatus
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = ts
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
		t.CreatedAt = t.CreatedAt.UTC()
		t.UpdatedAt = t.UpdatedAt.UTC()

		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		if first, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %q (first seen at task %d)", i+1, t.ID, first)
		}
		seen[t.ID] = i + 1
		out = append(out, t)
	}
	return out, nil
}
