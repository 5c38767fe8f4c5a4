// Package audit keeps an append-only JSON-lines record of import and export
// runs in the site's .navport directory.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	OpImport = "import"
	OpExport = "export"
)

// FileName is the log file inside the directory given to New.
const FileName = "audit.log"

// Entry is one line of the log.
type Entry struct {
	Timestamp time.Time      `json:"ts"`
	RunID     string         `json:"run_id"`
	Operation string         `json:"op"`
	File      string         `json:"file"`
	DryRun    bool           `json:"dry_run,omitempty"`
	Counts    map[string]int `json:"counts,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Logger appends entries to <dir>/audit.log. A Logger with no path drops
// everything.
type Logger struct {
	mu   sync.Mutex
	path string
}

// New returns a Logger for dir, or a discarding one when enabled is false.
func New(dir string, enabled bool) *Logger {
	if !enabled {
		return &Logger{}
	}
	return &Logger{path: filepath.Join(dir, FileName)}
}

// NewRunID returns the id that ties a command's output to its log line.
func NewRunID() string {
	return uuid.NewString()
}

func (l *Logger) Enabled() bool {
	return l.path != ""
}

// Log appends e, filling in the timestamp and run id when unset.
func (l *Logger) Log(e Entry) error {
	if !l.Enabled() {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.RunID == "" {
		e.RunID = NewRunID()
	}
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(l.path), err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("append audit entry: %w", err)
	}
	return f.Close()
}

// Read returns every entry in file order. Lines that do not decode are
// ignored; a missing file is an empty log.
func (l *Logger) Read() ([]Entry, error) {
	if !l.Enabled() {
		return nil, nil
	}
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if len(sc.Bytes()) == 0 || json.Unmarshal(sc.Bytes(), &e) != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("read audit log: %w", err)
	}
	return entries, nil
}
