// Package service defines the ports to collaborators outside the core.
package service

import (
	"context"

	"exposure/internal/domain/entity"
)

// SnapshotProvider reads the current mobile network truth. Each call returns
// one consistent snapshot.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*entity.Snapshot, error)
}
