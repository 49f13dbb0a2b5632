package store

import (
	"context"
	"encoding/json"
	"time"
)

// Snapshot namespaces.
const (
	NamespaceAuth = "auth"
	NamespaceApp  = "app"
)

// Snapshot is a point-in-time capture of one namespace.
type Snapshot struct {
	ID        int64
	Namespace string
	Sequence  int64 // assigned by Save when zero
	Timestamp time.Time
	Data      json.RawMessage
}

// SnapshotRepo manages namespaced state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot of namespace, or nil if none
	// exist.
	Latest(ctx context.Context, namespace string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of namespace.
	Prune(ctx context.Context, namespace string, keep int) error

	// Count returns the number of stored snapshots of namespace.
	Count(ctx context.Context, namespace string) (int, error)
}
