package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comalice/microstep/internal/core"
)

// RedisSnapshotStore is a SnapshotStore backed by Redis.
// It uses a simple key structure:
//
//	<prefix>snap:<machineID>  => JSON-encoded core.StateSnapshot
//	<prefix>idx:machines      => SET of all machine IDs
//
// The index is best-effort and always updated on Save.
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string
}

var _ SnapshotStore = (*RedisSnapshotStore)(nil)

// NewRedisSnapshotStore creates a RedisSnapshotStore.
// prefix is optional but recommended (e.g. "microstep:").
func NewRedisSnapshotStore(client *redis.Client, prefix string) *RedisSnapshotStore {
	if prefix == "" {
		prefix = "microstep:"
	}
	return &RedisSnapshotStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisSnapshotStore) keySnapshot(machineID string) string {
	return s.prefix + "snap:" + machineID
}

func (s *RedisSnapshotStore) keyMachines() string {
	return s.prefix + "idx:machines"
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot core.StateSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keySnapshot(snapshot.MachineID), payload, 0)
	pipe.SAdd(ctx, s.keyMachines(), snapshot.MachineID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, machineID string) (core.StateSnapshot, error) {
	payload, err := s.client.Get(ctx, s.keySnapshot(machineID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.StateSnapshot{}, fmt.Errorf("machine %q: %w", machineID, ErrSnapshotNotFound)
		}
		return core.StateSnapshot{}, fmt.Errorf("redis load: %w", err)
	}

	var snapshot core.StateSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return core.StateSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snapshot.MachineID = machineID // Ensure ID

	return snapshot, nil
}

// ListMachines returns the IDs of all machines with a stored snapshot.
func (s *RedisSnapshotStore) ListMachines(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.keyMachines()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list machines: %w", err)
	}
	return ids, nil
}
