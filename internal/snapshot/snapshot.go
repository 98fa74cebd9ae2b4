// Package snapshot reads and writes festival snapshots as YAML documents of
// the form {teams, candidates, programmes, results}.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// Decode reads one snapshot document. Ids may be strings, numbers or
// {$oid: ...} mappings.
func Decode(r io.Reader) (scoring.Snapshot, error) {
	var snap scoring.Snapshot
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		if err == io.EOF {
			return scoring.Snapshot{}, fmt.Errorf("snapshot is empty")
		}
		return scoring.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Load reads a snapshot file
func Load(path string) (scoring.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return scoring.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Encode writes snap as YAML with two-space indentation
func Encode(w io.Writer, snap scoring.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// Save writes snap to path, creating parent directories as needed
func Save(path string, snap scoring.Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
