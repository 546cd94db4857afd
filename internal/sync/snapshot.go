package sync

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// snapshot writes v as indented JSON into the snapshot directory under name.
// Snapshots are debugging artifacts of the last pass; failures are logged and
// never interrupt a sync.
func (s *Syncer) snapshot(name string, v any) {
	if s.opts.SnapshotDir == "" {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("snapshot %s: marshal: %v", name, err)
		return
	}
	path := filepath.Join(s.opts.SnapshotDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("snapshot %s: write: %v", name, err)
	}
}
