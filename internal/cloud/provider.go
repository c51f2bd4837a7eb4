package cloud

import (
	"context"
	"iter"
	"time"
)

// Provider is the resource API of a cloud provider.
//
// Query methods return lazy sequences: pages are fetched as the caller
// ranges over them, and the first error ends the sequence.
type Provider interface {
	// Instances yields the instances matching the filter
	Instances(ctx context.Context, filter Filter) iter.Seq2[Instance, error]

	// Volumes yields the volumes attached to an instance
	Volumes(ctx context.Context, instanceID string) iter.Seq2[Volume, error]

	// Snapshots yields the snapshots owned by the caller for a volume
	Snapshots(ctx context.Context, volumeID string) iter.Seq2[Snapshot, error]

	// StartInstance requests a start transition and returns the state reported right after
	StartInstance(ctx context.Context, id string) (State, error)

	// StopInstance requests a stop transition and returns the state reported right after
	StopInstance(ctx context.Context, id string) (State, error)

	// WaitUntilStopped blocks until the instance is stopped or the timeout expires
	WaitUntilStopped(ctx context.Context, id string, timeout time.Duration) error

	// WaitUntilRunning blocks until the instance is running or the timeout expires
	WaitUntilRunning(ctx context.Context, id string, timeout time.Duration) error

	// CreateSnapshot requests creation of a volume snapshot
	CreateSnapshot(ctx context.Context, req SnapshotRequest) (Snapshot, error)
}
