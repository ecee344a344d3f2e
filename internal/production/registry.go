package production

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/comalice/microstep/internal/core"
)

// ErrVersionNotFound is returned when a machine or version is unknown.
var ErrVersionNotFound = errors.New("version or machine not found")

// VersionedSnapshot annotates a snapshot with its version ID.
type VersionedSnapshot struct {
	core.StateSnapshot `yaml:",inline"`
	Version            string `json:"version" yaml:"version"`
}

// Registry keeps versioned snapshot history per machine.
type Registry interface {
	// Register saves the snapshot under a fresh version ID and returns it.
	Register(ctx context.Context, snapshot core.StateSnapshot) (string, error)

	// Latest returns the most recent snapshot for machineID.
	Latest(ctx context.Context, machineID string) (VersionedSnapshot, error)

	// Version returns the snapshot stored under a specific version.
	Version(ctx context.Context, machineID, version string) (VersionedSnapshot, error)

	// ListVersions returns versions for machineID, newest first.
	ListVersions(ctx context.Context, machineID string) ([]string, error)

	// ListMachines returns all machine IDs with at least one version.
	ListMachines(ctx context.Context) ([]string, error)
}

// MemoryRegistry is an in-memory Registry. Thread-safe.
type MemoryRegistry struct {
	mu       sync.RWMutex
	machines map[string][]VersionedSnapshot // append order = oldest first
}

var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		machines: make(map[string][]VersionedSnapshot),
	}
}

func (r *MemoryRegistry) Register(ctx context.Context, snapshot core.StateSnapshot) (string, error) {
	if snapshot.MachineID == "" {
		return "", errors.New("snapshot has no machine ID")
	}

	version := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.machines[snapshot.MachineID] = append(r.machines[snapshot.MachineID], VersionedSnapshot{
		StateSnapshot: snapshot,
		Version:       version,
	})
	return version, nil
}

func (r *MemoryRegistry) Latest(ctx context.Context, machineID string) (VersionedSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.machines[machineID]
	if len(versions) == 0 {
		return VersionedSnapshot{}, ErrVersionNotFound
	}
	return versions[len(versions)-1], nil
}

func (r *MemoryRegistry) Version(ctx context.Context, machineID, version string) (VersionedSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, vs := range r.machines[machineID] {
		if vs.Version == version {
			return vs, nil
		}
	}
	return VersionedSnapshot{}, ErrVersionNotFound
}

func (r *MemoryRegistry) ListVersions(ctx context.Context, machineID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.machines[machineID]
	if len(versions) == 0 {
		return nil, ErrVersionNotFound
	}

	out := make([]string, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- {
		out = append(out, versions[i].Version)
	}
	return out, nil
}

func (r *MemoryRegistry) ListMachines(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.machines))
	for id := range r.machines {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
