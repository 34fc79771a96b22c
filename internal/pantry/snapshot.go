package pantry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const snapshotPattern = "pantry-*.json"

// Snapshot copies the current pantry file into dir under a timestamped
// name and returns the snapshot path. A pantry that was never saved
// snapshots as an empty document.
func (p *Pantry) Snapshot(dir string) (string, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("pantry: create snapshot dir: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	name := fmt.Sprintf("pantry-%s.json", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := writeJSONFile(path, p.data); err != nil {
		return "", err
	}
	return path, nil
}

// PruneSnapshots removes all but the newest keepLast snapshots in dir.
// The timestamp is embedded in the filename, so lexical order matches
// chronology.
func PruneSnapshots(dir string, keepLast int) error {
	if keepLast <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, snapshotPattern))
	if err != nil {
		return err
	}
	if len(matches) <= keepLast {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i] > matches[j]
	})

	for _, oldPath := range matches[keepLast:] {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
