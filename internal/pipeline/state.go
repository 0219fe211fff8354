// =============================================================================
// state.go - Last-update record
// =============================================================================
package pipeline

import (
	"os"
	"strings"
)

// StateFile persists the title of the last notified announcement in a plain
// single-line UTF-8 file. No locking: the watcher is a single-instance
// periodic task. Because the title is the only key, a later announcement that
// reuses an earlier title is skipped.
type StateFile struct {
	Path string
}

// Load returns the recorded title. ok is false when no record exists yet,
// which the orchestrator treats as "not a duplicate".
func (s *StateFile) Load() (title string, ok bool) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// Save overwrites the record with title. No history, no backup.
func (s *StateFile) Save(title string) error {
	return os.WriteFile(s.Path, []byte(title), 0o644)
}
