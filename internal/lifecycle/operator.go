package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
	"github.com/google/uuid"
)

const (
	// DefaultWaitTimeout bounds each wait for a state transition
	DefaultWaitTimeout = 10 * time.Minute
	// DefaultSnapshotDescription is attached to every snapshot created here
	DefaultSnapshotDescription = "Created by ec2ctl"
	// TagRunID tags every snapshot with the run that created it
	TagRunID = "ec2ctl:run-id"
)

// Operator performs lifecycle operations on located instances
type Operator struct {
	provider    cloud.Provider
	out         io.Writer
	policy      ErrorPolicy
	waitTimeout time.Duration
	description string
	runID       string
}

// Option configures an Operator
type Option func(*Operator)

// WithErrorPolicy sets how per-instance failures are handled
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(o *Operator) {
		o.policy = p
	}
}

// WithWaitTimeout bounds each wait for a state transition
func WithWaitTimeout(d time.Duration) Option {
	return func(o *Operator) {
		o.waitTimeout = d
	}
}

// WithSnapshotDescription sets the description attached to created snapshots
func WithSnapshotDescription(desc string) Option {
	return func(o *Operator) {
		o.description = desc
	}
}

// WithRunID overrides the generated run ID
func WithRunID(id string) Option {
	return func(o *Operator) {
		o.runID = id
	}
}

// NewOperator creates an Operator writing its results to out
func NewOperator(provider cloud.Provider, out io.Writer, opts ...Option) (*Operator, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if out == nil {
		return nil, fmt.Errorf("output writer cannot be nil")
	}

	o := &Operator{
		provider:    provider,
		out:         out,
		policy:      DefaultErrorPolicy,
		waitTimeout: DefaultWaitTimeout,
		description: DefaultSnapshotDescription,
	}
	for _, opt := range opts {
		opt(o)
	}

	if _, err := ParseErrorPolicy(string(o.policy)); err != nil {
		return nil, err
	}
	if o.waitTimeout <= 0 {
		return nil, fmt.Errorf("wait timeout must be positive, got %s", o.waitTimeout)
	}
	if o.runID == "" {
		o.runID = uuid.NewString()
	}

	return o, nil
}

// RunID returns the identifier tagged onto snapshots created by this Operator
func (o *Operator) RunID() string {
	return o.runID
}

// List prints one summary line per located instance. It never requests a transition.
func (o *Operator) List(ctx context.Context, project string) error {
	for inst, err := range Locate(ctx, o.provider, project) {
		if err != nil {
			return err
		}
		o.printInstance(inst)
	}
	return nil
}

// Stop requests a stop transition for every located instance
func (o *Operator) Stop(ctx context.Context, project string) error {
	return o.transition(ctx, project, "stop", "Stopping", o.provider.StopInstance)
}

// Start requests a start transition for every located instance
func (o *Operator) Start(ctx context.Context, project string) error {
	return o.transition(ctx, project, "start", "Starting", o.provider.StartInstance)
}

func (o *Operator) transition(ctx context.Context, project, verb, progress string, request func(context.Context, string) (cloud.State, error)) error {
	for inst, err := range Locate(ctx, o.provider, project) {
		if err != nil {
			return err
		}

		fmt.Fprintf(o.out, "%s %s...\n", progress, inst.ID)

		state, err := request(ctx, inst.ID)
		if err != nil {
			if err := o.fail(verb, inst.ID, err); err != nil {
				return err
			}
			continue
		}

		if state != "" {
			inst.State = state
		}
		o.printInstance(inst)
	}
	return nil
}

// Snapshot stops every pending or running instance, snapshots each of its
// volumes once the stop is confirmed, and starts it again. Instances in any
// other state are skipped.
func (o *Operator) Snapshot(ctx context.Context, project string) error {
	slog.Info("starting snapshot run", slog.String("run_id", o.runID), slog.String("project", project))

	for inst, err := range Locate(ctx, o.provider, project) {
		if err != nil {
			return err
		}

		if !inst.State.Active() {
			fmt.Fprintf(o.out, "Skipping %s, state %s\n", inst.ID, inst.State)
			continue
		}

		if err := o.snapshotInstance(ctx, inst); err != nil {
			if err := o.fail("snapshot", inst.ID, err); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(o.out, "Job's done!")
	return nil
}

func (o *Operator) snapshotInstance(ctx context.Context, inst cloud.Instance) (err error) {
	fmt.Fprintf(o.out, "Stopping %s...\n", inst.ID)
	if _, err := o.provider.StopInstance(ctx, inst.ID); err != nil {
		return err
	}

	// Once a stop was requested the instance must not be left stopped
	restartRequested := false
	defer func() {
		if err != nil && !restartRequested {
			o.restart(ctx, inst.ID)
		}
	}()

	if err := o.provider.WaitUntilStopped(ctx, inst.ID, o.waitTimeout); err != nil {
		return err
	}

	tags := map[string]string{TagRunID: o.runID}
	if p, ok := inst.Tags[cloud.TagProject]; ok {
		tags[cloud.TagProject] = p
	}

	for vol, err := range o.provider.Volumes(ctx, inst.ID) {
		if err != nil {
			return err
		}

		fmt.Fprintf(o.out, "  Creating snapshot of %s\n", vol.ID)
		snap, err := o.provider.CreateSnapshot(ctx, cloud.SnapshotRequest{
			VolumeID:    vol.ID,
			Description: o.description,
			Tags:        tags,
		})
		if err != nil {
			return err
		}
		slog.Debug("snapshot requested",
			slog.String("instance", inst.ID),
			slog.String("volume", vol.ID),
			slog.String("snapshot", snap.ID))
	}

	fmt.Fprintf(o.out, "Starting %s...\n", inst.ID)
	restartRequested = true
	if _, err := o.provider.StartInstance(ctx, inst.ID); err != nil {
		return err
	}

	return o.provider.WaitUntilRunning(ctx, inst.ID, o.waitTimeout)
}

// restart makes a single attempt to start an instance left stopped by a failed snapshot
func (o *Operator) restart(ctx context.Context, id string) {
	if ctx.Err() != nil {
		fmt.Fprintf(o.out, "Instance %s may be left stopped\n", id)
		slog.Warn("not restarting instance after cancellation", slog.String("instance", id))
		return
	}

	fmt.Fprintf(o.out, "Restarting %s...\n", id)
	if _, err := o.provider.StartInstance(ctx, id); err != nil {
		fmt.Fprintf(o.out, "Could not restart %s. %s\n", id, reason(err))
		slog.Warn("restart after failed snapshot failed", slog.String("instance", id), slog.Any("error", err))
	}
}

// ListVolumes prints one line per volume attached to a located instance
func (o *Operator) ListVolumes(ctx context.Context, project string) error {
	for inst, err := range Locate(ctx, o.provider, project) {
		if err != nil {
			return err
		}

		for vol, err := range o.provider.Volumes(ctx, inst.ID) {
			if err != nil {
				return err
			}

			encrypted := "Not Encrypted"
			if vol.Encrypted {
				encrypted = "Encrypted"
			}
			o.printLine(inst.ID, vol.ID, fmt.Sprintf("%dGiB", vol.Size), vol.State, encrypted)
		}
	}
	return nil
}

// ListSnapshots prints one line per snapshot of a volume attached to a located instance
func (o *Operator) ListSnapshots(ctx context.Context, project string) error {
	for inst, err := range Locate(ctx, o.provider, project) {
		if err != nil {
			return err
		}

		for vol, err := range o.provider.Volumes(ctx, inst.ID) {
			if err != nil {
				return err
			}

			for snap, err := range o.provider.Snapshots(ctx, vol.ID) {
				if err != nil {
					return err
				}
				o.printLine(inst.ID, vol.ID, snap.ID, snap.State, snap.Progress, snap.StartTime.Format(time.RFC3339))
			}
		}
	}
	return nil
}

// fail reports a per-instance failure and returns the error that should end
// the command, or nil if the batch continues
func (o *Operator) fail(verb, id string, err error) error {
	if !isolatable(err) {
		return err
	}

	fmt.Fprintf(o.out, "Could not %s %s. %s\n", verb, id, reason(err))
	slog.Warn("instance operation failed",
		slog.String("operation", verb),
		slog.String("instance", id),
		slog.Any("error", err))

	if o.policy == PolicyAbort {
		return fmt.Errorf("could not %s %s: %w", verb, id, err)
	}
	return nil
}

// isolatable reports whether err concerns a single instance only
func isolatable(err error) bool {
	return cloud.IsClientError(err) || cloud.IsWaitTimeout(err)
}

// reason trims an error down to the provider's own message when there is one
func reason(err error) string {
	var ce *cloud.ClientError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}

func (o *Operator) printInstance(inst cloud.Instance) {
	o.printLine(
		inst.ID,
		inst.Type,
		inst.AvailabilityZone,
		inst.State.String(),
		inst.PublicDNSName,
		inst.Project(),
	)
}

func (o *Operator) printLine(fields ...string) {
	fmt.Fprintln(o.out, strings.Join(fields, ", "))
}
