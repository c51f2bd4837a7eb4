package ec2

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
)

// API is the subset of the EC2 client used by Client. *ec2.Client satisfies it.
type API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	CreateSnapshot(ctx context.Context, params *ec2.CreateSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error)
}

// Default polling bounds for state waiters
const (
	DefaultWaitMinDelay = 5 * time.Second
	DefaultWaitMaxDelay = 30 * time.Second
)

// Client implements cloud.Provider on top of the EC2 API
type Client struct {
	api          API
	waitMinDelay time.Duration
	waitMaxDelay time.Duration
}

var _ cloud.Provider = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithWaitDelay sets the polling bounds used while waiting for state transitions
func WithWaitDelay(minDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.waitMinDelay = minDelay
		c.waitMaxDelay = maxDelay
	}
}

// NewClient wraps an EC2 API implementation
func NewClient(api API, opts ...Option) (*Client, error) {
	if api == nil {
		return nil, fmt.Errorf("EC2 API client cannot be nil")
	}

	c := &Client{
		api:          api,
		waitMinDelay: DefaultWaitMinDelay,
		waitMaxDelay: DefaultWaitMaxDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.waitMinDelay <= 0 || c.waitMaxDelay < c.waitMinDelay {
		return nil, fmt.Errorf("invalid wait delay bounds: min %s, max %s", c.waitMinDelay, c.waitMaxDelay)
	}

	return c, nil
}

// NewFromConfig creates a Client from an AWS config. A non-empty endpoint
// overrides the EC2 service endpoint (e.g. for LocalStack).
func NewFromConfig(cfg aws.Config, endpoint string, opts ...Option) (*Client, error) {
	api := ec2.NewFromConfig(cfg, func(o *ec2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewClient(api, opts...)
}

// Instances yields the instances matching filter, one DescribeInstances page at a time
func (c *Client) Instances(ctx context.Context, filter cloud.Filter) iter.Seq2[cloud.Instance, error] {
	return func(yield func(cloud.Instance, error) bool) {
		input := &ec2.DescribeInstancesInput{}
		if filter.Project != "" {
			input.Filters = []ec2types.Filter{
				{
					Name:   aws.String("tag:" + cloud.TagProject),
					Values: []string{filter.Project},
				},
			}
		}

		paginator := ec2.NewDescribeInstancesPaginator(c.api, input)
		for page := 1; paginator.HasMorePages(); page++ {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				yield(cloud.Instance{}, fmt.Errorf("failed to describe instances: %w", classify("", err)))
				return
			}

			slog.Debug("fetched instances page",
				slog.Int("page", page),
				slog.Int("reservations", len(out.Reservations)),
				slog.String("project", filter.Project))

			for _, reservation := range out.Reservations {
				for i := range reservation.Instances {
					if !yield(instanceFromEC2(&reservation.Instances[i]), nil) {
						return
					}
				}
			}
		}
	}
}

// Volumes yields the volumes attached to an instance
func (c *Client) Volumes(ctx context.Context, instanceID string) iter.Seq2[cloud.Volume, error] {
	return func(yield func(cloud.Volume, error) bool) {
		input := &ec2.DescribeVolumesInput{
			Filters: []ec2types.Filter{
				{
					Name:   aws.String("attachment.instance-id"),
					Values: []string{instanceID},
				},
			},
		}

		paginator := ec2.NewDescribeVolumesPaginator(c.api, input)
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				yield(cloud.Volume{}, fmt.Errorf("failed to describe volumes of %s: %w", instanceID, classify(instanceID, err)))
				return
			}

			for i := range out.Volumes {
				if !yield(volumeFromEC2(&out.Volumes[i], instanceID), nil) {
					return
				}
			}
		}
	}
}

// Snapshots yields the snapshots of a volume owned by the current account
func (c *Client) Snapshots(ctx context.Context, volumeID string) iter.Seq2[cloud.Snapshot, error] {
	return func(yield func(cloud.Snapshot, error) bool) {
		input := &ec2.DescribeSnapshotsInput{
			OwnerIds: []string{"self"},
			Filters: []ec2types.Filter{
				{
					Name:   aws.String("volume-id"),
					Values: []string{volumeID},
				},
			},
		}

		paginator := ec2.NewDescribeSnapshotsPaginator(c.api, input)
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				yield(cloud.Snapshot{}, fmt.Errorf("failed to describe snapshots of %s: %w", volumeID, classify(volumeID, err)))
				return
			}

			for i := range out.Snapshots {
				if !yield(snapshotFromEC2(&out.Snapshots[i]), nil) {
					return
				}
			}
		}
	}
}

// StartInstance requests a start transition
func (c *Client) StartInstance(ctx context.Context, id string) (cloud.State, error) {
	slog.Debug("starting instance", slog.String("instance", id))

	out, err := c.api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return "", fmt.Errorf("failed to start instance %s: %w", id, classify(id, err))
	}

	return currentState(out.StartingInstances, id), nil
}

// StopInstance requests a stop transition
func (c *Client) StopInstance(ctx context.Context, id string) (cloud.State, error) {
	slog.Debug("stopping instance", slog.String("instance", id))

	out, err := c.api.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return "", fmt.Errorf("failed to stop instance %s: %w", id, classify(id, err))
	}

	return currentState(out.StoppingInstances, id), nil
}

// WaitUntilStopped blocks until the instance reports the stopped state
func (c *Client) WaitUntilStopped(ctx context.Context, id string, timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("wait timeout must be positive, got %s", timeout)
	}

	slog.Debug("waiting for instance to stop", slog.String("instance", id), slog.Duration("timeout", timeout))

	waiter := ec2.NewInstanceStoppedWaiter(c.api, func(o *ec2.InstanceStoppedWaiterOptions) {
		o.MinDelay = c.waitMinDelay
		o.MaxDelay = c.waitMaxDelay
	})

	err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}}, timeout)
	if err != nil {
		return fmt.Errorf("instance %s did not stop: %w", id, classifyWait(ctx, id, err))
	}

	return nil
}

// WaitUntilRunning blocks until the instance reports the running state
func (c *Client) WaitUntilRunning(ctx context.Context, id string, timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("wait timeout must be positive, got %s", timeout)
	}

	slog.Debug("waiting for instance to run", slog.String("instance", id), slog.Duration("timeout", timeout))

	waiter := ec2.NewInstanceRunningWaiter(c.api, func(o *ec2.InstanceRunningWaiterOptions) {
		o.MinDelay = c.waitMinDelay
		o.MaxDelay = c.waitMaxDelay
	})

	err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}}, timeout)
	if err != nil {
		return fmt.Errorf("instance %s did not start: %w", id, classifyWait(ctx, id, err))
	}

	return nil
}

// CreateSnapshot requests a snapshot of a volume
func (c *Client) CreateSnapshot(ctx context.Context, req cloud.SnapshotRequest) (cloud.Snapshot, error) {
	if req.VolumeID == "" {
		return cloud.Snapshot{}, fmt.Errorf("volume ID cannot be empty")
	}

	slog.Debug("creating snapshot", slog.String("volume", req.VolumeID))

	input := &ec2.CreateSnapshotInput{
		VolumeId:    aws.String(req.VolumeID),
		Description: aws.String(req.Description),
	}
	if len(req.Tags) > 0 {
		input.TagSpecifications = []ec2types.TagSpecification{
			{
				ResourceType: ec2types.ResourceTypeSnapshot,
				Tags:         tagsToEC2(req.Tags),
			},
		}
	}

	out, err := c.api.CreateSnapshot(ctx, input)
	if err != nil {
		return cloud.Snapshot{}, fmt.Errorf("failed to snapshot volume %s: %w", req.VolumeID, classify(req.VolumeID, err))
	}

	return cloud.Snapshot{
		ID:          aws.ToString(out.SnapshotId),
		VolumeID:    aws.ToString(out.VolumeId),
		Progress:    aws.ToString(out.Progress),
		StartTime:   aws.ToTime(out.StartTime),
		State:       string(out.State),
		Description: aws.ToString(out.Description),
	}, nil
}

// currentState picks the reported state of id out of a state change list
func currentState(changes []ec2types.InstanceStateChange, id string) cloud.State {
	for _, change := range changes {
		if aws.ToString(change.InstanceId) == id && change.CurrentState != nil {
			return cloud.State(change.CurrentState.Name)
		}
	}
	return ""
}
