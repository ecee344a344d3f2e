// Package production provides external-tooling integrations over the
// observable State shape: file persisters, database-backed snapshot stores,
// a versioned snapshot registry, and a transition publisher. These operate
// only on settled States handed over by the caller; the engine itself never
// persists anything mid-step.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/microstep/internal/core"
)

// SnapshotStore persists and retrieves settled-state snapshots by machine ID.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot core.StateSnapshot) error
	Load(ctx context.Context, machineID string) (core.StateSnapshot, error)
}

// JSONPersister is a stdlib-only file-based store using JSON serialization.
type JSONPersister struct {
	dir string
}

var _ SnapshotStore = (*JSONPersister)(nil)

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.StateSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.MachineID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (core.StateSnapshot, error) {
	fn := filepath.Join(p.dir, machineID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.StateSnapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return core.StateSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.StateSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.MachineID = machineID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based store using YAML serialization.
type YAMLPersister struct {
	dir string
}

var _ SnapshotStore = (*YAMLPersister)(nil)

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.StateSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.MachineID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (core.StateSnapshot, error) {
	fn := filepath.Join(p.dir, machineID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.StateSnapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return core.StateSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot core.StateSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.StateSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.MachineID = machineID // Ensure ID

	return snapshot, nil
}
