package cloud

import "time"

// TagProject is the tag key used to group instances by project
const TagProject = "Project"

// NoProject is printed in place of a missing Project tag
const NoProject = "<no_project>"

// State is the lifecycle state of an instance as reported by the provider
type State string

// Instance states
const (
	StatePending      State = "pending"
	StateRunning      State = "running"
	StateShuttingDown State = "shutting-down"
	StateTerminated   State = "terminated"
	StateStopping     State = "stopping"
	StateStopped      State = "stopped"
)

// Active reports whether the instance is pending or running
func (s State) Active() bool {
	return s == StatePending || s == StateRunning
}

func (s State) String() string {
	return string(s)
}

// Instance represents a compute instance with simplified fields
type Instance struct {
	ID               string
	Type             string
	AvailabilityZone string
	State            State
	PublicDNSName    string
	Tags             map[string]string
}

// Project returns the value of the Project tag, or NoProject if unset
func (i Instance) Project() string {
	if p, ok := i.Tags[TagProject]; ok {
		return p
	}
	return NoProject
}

// Volume represents a block storage volume attached to an instance
type Volume struct {
	ID         string
	InstanceID string
	Size       int32 // GiB
	Encrypted  bool
	State      string
}

// Snapshot represents a point-in-time copy of a volume
type Snapshot struct {
	ID          string
	VolumeID    string
	Progress    string
	StartTime   time.Time
	State       string
	Description string
}

// Filter constrains an instance query. An empty Project matches every instance.
type Filter struct {
	Project string
}

// SnapshotRequest describes a snapshot to create
type SnapshotRequest struct {
	VolumeID    string
	Description string
	Tags        map[string]string
}
