// Package beacon writes signal files to a well-known temp location so
// external processes can observe wizard progress. All writes are
// fire-and-forget: failures are logged and never surfaced or retried.
package beacon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexisbeaulieu97/shipshape/internal/logger"
)

const (
	interactionLogName = "shipshape-interactions.log"
	triggerName        = "shipshape-trigger"
	statusName         = "shipshape-status.json"
)

// Status is the structured progress document external monitors read.
type Status struct {
	Preset      string    `json:"preset"`
	Page        int       `json:"page"`
	Total       int       `json:"total"`
	Completed   int       `json:"completed"`
	AllComplete bool      `json:"all_complete"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Beacon writes the three signal files into one directory.
type Beacon struct {
	dir string
	log *logger.Logger
	now func() time.Time
}

// New builds a Beacon writing into dir; an empty dir means the system temp
// directory.
func New(dir string, log *logger.Logger) *Beacon {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Beacon{
		dir: dir,
		log: log.WithComponent("beacon"),
		now: time.Now,
	}
}

// Dir returns the directory the beacon writes into.
func (b *Beacon) Dir() string {
	return b.dir
}

// LogInteraction appends one timestamped event line to the interaction log.
func (b *Beacon) LogInteraction(event string) {
	path := filepath.Join(b.dir, interactionLogName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		b.log.WithFields(map[string]any{"path": path, "error": err}).Warn("interaction log open failed")
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s\n", b.now().UTC().Format(time.RFC3339), event)
	if _, err := f.WriteString(line); err != nil {
		b.log.WithFields(map[string]any{"path": path, "error": err}).Warn("interaction log write failed")
	}
}

// Trigger replaces the trigger file atomically with the given event name.
// Monitors watch the file's mtime and content.
func (b *Beacon) Trigger(event string) {
	path := filepath.Join(b.dir, triggerName)
	content := fmt.Sprintf("%s %s\n", b.now().UTC().Format(time.RFC3339), event)
	b.writeAtomic(path, []byte(content))
}

// WriteStatus replaces the structured status document atomically.
func (b *Beacon) WriteStatus(status Status) {
	status.UpdatedAt = b.now().UTC()
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		b.log.WithFields(map[string]any{"error": err}).Warn("status marshal failed")
		return
	}
	b.writeAtomic(filepath.Join(b.dir, statusName), data)
}

func (b *Beacon) writeAtomic(path string, data []byte) {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		b.log.WithFields(map[string]any{"path": path, "error": err}).Warn("signal write failed")
		return
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		b.log.WithFields(map[string]any{"path": path, "error": err}).Warn("signal rename failed")
	}
}
