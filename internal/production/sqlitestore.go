package production

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comalice/microstep/internal/core"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a machine ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SQLiteSnapshotStore is a SnapshotStore backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteSnapshotStore struct {
	db *sql.DB
}

var _ SnapshotStore = (*SQLiteSnapshotStore)(nil)

// NewSQLiteSnapshotStore initializes the required schema in the given
// database and returns a new SQLiteSnapshotStore.
func NewSQLiteSnapshotStore(db *sql.DB) (*SQLiteSnapshotStore, error) {
	s := &SQLiteSnapshotStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSnapshotStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			machine_id TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			context BLOB,
			taken_at TEXT NOT NULL
		);`,
	)
	return err
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, snapshot core.StateSnapshot) error {
	contextData, err := json.Marshal(snapshot.Context)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (machine_id, value, context, taken_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(machine_id) DO UPDATE SET
			value = excluded.value,
			context = excluded.context,
			taken_at = excluded.taken_at`,
		snapshot.MachineID,
		snapshot.Value,
		contextData,
		snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context, machineID string) (core.StateSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value, context, taken_at FROM snapshots WHERE machine_id = ?`,
		machineID,
	)

	var (
		value       string
		contextData []byte
		takenAt     string
	)
	if err := row.Scan(&value, &contextData, &takenAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.StateSnapshot{}, fmt.Errorf("machine %q: %w", machineID, ErrSnapshotNotFound)
		}
		return core.StateSnapshot{}, fmt.Errorf("query snapshot: %w", err)
	}

	var contextMap map[string]any
	if len(contextData) > 0 {
		if err := json.Unmarshal(contextData, &contextMap); err != nil {
			return core.StateSnapshot{}, fmt.Errorf("decode context: %w", err)
		}
	}

	ts, err := time.Parse(time.RFC3339Nano, takenAt)
	if err != nil {
		return core.StateSnapshot{}, fmt.Errorf("parse timestamp: %w", err)
	}

	return core.StateSnapshot{
		MachineID: machineID,
		Value:     value,
		Context:   contextMap,
		Timestamp: ts,
	}, nil
}
