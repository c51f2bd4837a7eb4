package ec2

import (
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
)

func instanceFromEC2(in *ec2types.Instance) cloud.Instance {
	inst := cloud.Instance{
		ID:            aws.ToString(in.InstanceId),
		Type:          string(in.InstanceType),
		PublicDNSName: aws.ToString(in.PublicDnsName),
		Tags:          make(map[string]string, len(in.Tags)),
	}

	if in.Placement != nil {
		inst.AvailabilityZone = aws.ToString(in.Placement.AvailabilityZone)
	}
	if in.State != nil {
		inst.State = cloud.State(in.State.Name)
	}
	for _, tag := range in.Tags {
		inst.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return inst
}

func volumeFromEC2(v *ec2types.Volume, instanceID string) cloud.Volume {
	return cloud.Volume{
		ID:         aws.ToString(v.VolumeId),
		InstanceID: instanceID,
		Size:       aws.ToInt32(v.Size),
		Encrypted:  aws.ToBool(v.Encrypted),
		State:      string(v.State),
	}
}

func snapshotFromEC2(s *ec2types.Snapshot) cloud.Snapshot {
	return cloud.Snapshot{
		ID:          aws.ToString(s.SnapshotId),
		VolumeID:    aws.ToString(s.VolumeId),
		Progress:    aws.ToString(s.Progress),
		StartTime:   aws.ToTime(s.StartTime),
		State:       string(s.State),
		Description: aws.ToString(s.Description),
	}
}

// tagsToEC2 converts a tag map, sorted by key so requests are deterministic
func tagsToEC2(tags map[string]string) []ec2types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ec2types.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, ec2types.Tag{
			Key:   aws.String(k),
			Value: aws.String(tags[k]),
		})
	}
	return out
}
