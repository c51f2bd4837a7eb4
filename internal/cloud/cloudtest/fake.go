// Package cloudtest provides an in-memory cloud.Provider for tests.
package cloudtest

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
)

// Call records a single provider call
type Call struct {
	Method string
	ID     string
}

// Provider is an in-memory cloud.Provider. Instances keep their insertion
// order. Transitions complete immediately unless an error is injected.
type Provider struct {
	mu sync.Mutex

	instances []*cloud.Instance
	volumes   map[string][]cloud.Volume
	snapshots map[string][]cloud.Snapshot
	calls     []Call
	nextSnap  int
	requests  []cloud.SnapshotRequest

	// Errors injected per method and resource ID, e.g. Errors["StopInstance"]["i-1"]
	Errors map[string]map[string]error

	// ListErr, when set, is returned by Instances after the first n instances
	ListErr      error
	ListErrAfter int
}

var _ cloud.Provider = (*Provider)(nil)

// New creates an empty fake provider
func New() *Provider {
	return &Provider{
		volumes:   make(map[string][]cloud.Volume),
		snapshots: make(map[string][]cloud.Snapshot),
		Errors:    make(map[string]map[string]error),
	}
}

// AddInstance registers an instance with the given state and tags
func (p *Provider) AddInstance(id string, state cloud.State, tags map[string]string) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	if tags == nil {
		tags = map[string]string{}
	}
	p.instances = append(p.instances, &cloud.Instance{
		ID:               id,
		Type:             "t3.micro",
		AvailabilityZone: "us-east-1a",
		State:            state,
		PublicDNSName:    fmt.Sprintf("%s.compute.example.com", id),
		Tags:             tags,
	})
	return p
}

// AddVolume attaches a volume to an instance
func (p *Provider) AddVolume(instanceID, volumeID string, size int32, encrypted bool) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volumes[instanceID] = append(p.volumes[instanceID], cloud.Volume{
		ID:         volumeID,
		InstanceID: instanceID,
		Size:       size,
		Encrypted:  encrypted,
		State:      "in-use",
	})
	return p
}

// AddSnapshot registers an existing snapshot of a volume
func (p *Provider) AddSnapshot(s cloud.Snapshot) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshots[s.VolumeID] = append(p.snapshots[s.VolumeID], s)
	return p
}

// FailOn injects an error for method on resource id
func (p *Provider) FailOn(method, id string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Errors[method] == nil {
		p.Errors[method] = make(map[string]error)
	}
	p.Errors[method][id] = err
	return p
}

// Calls returns a copy of the recorded calls
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// CallsTo returns the recorded calls of a single method
func (p *Provider) CallsTo(method string) []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// SnapshotRequests returns every CreateSnapshot request received
func (p *Provider) SnapshotRequests() []cloud.SnapshotRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]cloud.SnapshotRequest(nil), p.requests...)
}

// State returns the current state of an instance
func (p *Provider) State(id string) cloud.State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if inst := p.find(id); inst != nil {
		return inst.State
	}
	return ""
}

// SnapshotsOf returns the snapshots currently recorded for a volume
func (p *Provider) SnapshotsOf(volumeID string) []cloud.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]cloud.Snapshot, len(p.snapshots[volumeID]))
	copy(out, p.snapshots[volumeID])
	return out
}

func (p *Provider) record(method, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, Call{Method: method, ID: id})
	if errs, ok := p.Errors[method]; ok {
		if err, ok := errs[id]; ok {
			return err
		}
	}
	return nil
}

func (p *Provider) find(id string) *cloud.Instance {
	for _, inst := range p.instances {
		if inst.ID == id {
			return inst
		}
	}
	return nil
}

// Instances implements cloud.Provider
func (p *Provider) Instances(_ context.Context, filter cloud.Filter) iter.Seq2[cloud.Instance, error] {
	return func(yield func(cloud.Instance, error) bool) {
		if err := p.record("Instances", filter.Project); err != nil {
			yield(cloud.Instance{}, err)
			return
		}

		p.mu.Lock()
		snapshot := make([]cloud.Instance, 0, len(p.instances))
		for _, inst := range p.instances {
			if filter.Project != "" && inst.Tags[cloud.TagProject] != filter.Project {
				continue
			}
			snapshot = append(snapshot, *inst)
		}
		p.mu.Unlock()

		for i, inst := range snapshot {
			if p.ListErr != nil && i == p.ListErrAfter {
				yield(cloud.Instance{}, p.ListErr)
				return
			}
			if !yield(inst, nil) {
				return
			}
		}
		if p.ListErr != nil && p.ListErrAfter >= len(snapshot) {
			yield(cloud.Instance{}, p.ListErr)
		}
	}
}

// Volumes implements cloud.Provider
func (p *Provider) Volumes(_ context.Context, instanceID string) iter.Seq2[cloud.Volume, error] {
	return func(yield func(cloud.Volume, error) bool) {
		if err := p.record("Volumes", instanceID); err != nil {
			yield(cloud.Volume{}, err)
			return
		}

		p.mu.Lock()
		vols := append([]cloud.Volume(nil), p.volumes[instanceID]...)
		p.mu.Unlock()

		for _, v := range vols {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Snapshots implements cloud.Provider
func (p *Provider) Snapshots(_ context.Context, volumeID string) iter.Seq2[cloud.Snapshot, error] {
	return func(yield func(cloud.Snapshot, error) bool) {
		if err := p.record("Snapshots", volumeID); err != nil {
			yield(cloud.Snapshot{}, err)
			return
		}

		for _, s := range p.SnapshotsOf(volumeID) {
			if !yield(s, nil) {
				return
			}
		}
	}
}

// StartInstance implements cloud.Provider
func (p *Provider) StartInstance(_ context.Context, id string) (cloud.State, error) {
	if err := p.record("StartInstance", id); err != nil {
		return "", err
	}
	return p.transition(id, cloud.StatePending, cloud.StateRunning)
}

// StopInstance implements cloud.Provider
func (p *Provider) StopInstance(_ context.Context, id string) (cloud.State, error) {
	if err := p.record("StopInstance", id); err != nil {
		return "", err
	}
	return p.transition(id, cloud.StateStopping, cloud.StateStopped)
}

// transition reports the intermediate state and leaves the instance in the final one
func (p *Provider) transition(id string, reported, final cloud.State) (cloud.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst := p.find(id)
	if inst == nil {
		return "", &cloud.ClientError{Code: "InvalidInstanceID.NotFound", Message: "instance not found", ResourceID: id}
	}
	inst.State = final
	return reported, nil
}

// WaitUntilStopped implements cloud.Provider
func (p *Provider) WaitUntilStopped(_ context.Context, id string, _ time.Duration) error {
	if err := p.record("WaitUntilStopped", id); err != nil {
		return err
	}
	return p.expect(id, cloud.StateStopped)
}

// WaitUntilRunning implements cloud.Provider
func (p *Provider) WaitUntilRunning(_ context.Context, id string, _ time.Duration) error {
	if err := p.record("WaitUntilRunning", id); err != nil {
		return err
	}
	return p.expect(id, cloud.StateRunning)
}

func (p *Provider) expect(id string, want cloud.State) error {
	if got := p.State(id); got != want {
		return fmt.Errorf("instance %s is %s, not %s: %w", id, got, want, cloud.ErrWaitTimeout)
	}
	return nil
}

// CreateSnapshot implements cloud.Provider
func (p *Provider) CreateSnapshot(_ context.Context, req cloud.SnapshotRequest) (cloud.Snapshot, error) {
	if err := p.record("CreateSnapshot", req.VolumeID); err != nil {
		return cloud.Snapshot{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)
	p.nextSnap++
	snap := cloud.Snapshot{
		ID:          fmt.Sprintf("snap-%d", p.nextSnap),
		VolumeID:    req.VolumeID,
		Progress:    "0%",
		StartTime:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		State:       "pending",
		Description: req.Description,
	}
	p.snapshots[req.VolumeID] = append(p.snapshots[req.VolumeID], snap)
	return snap, nil
}
