package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/voltlog/internal/store"
)

// WriteBackup writes a full snapshot of all four collections, stamped
// with the export time.
func WriteBackup(path string, snap store.Snapshot) error {
	snap.ExportedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ReadBackup parses a backup file. Malformed JSON, or a payload carrying
// none of the four recognized collections, is an error; nothing is
// applied to any store here, so a failed read never partially mutates.
func ReadBackup(path string) (store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read backup file: %w", err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("invalid backup file: %w", err)
	}
	return snap, nil
}
