package lifecycle

import (
	"context"
	"iter"

	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
)

// Locate yields the instances whose Project tag equals project exactly. Only
// an empty project yields every instance visible to the provider credentials;
// any other value, blank or not, constrains the query.
//
// The sequence is lazy and should be consumed once. Provider errors are
// yielded as-is and end the sequence.
func Locate(ctx context.Context, provider cloud.Provider, project string) iter.Seq2[cloud.Instance, error] {
	return provider.Instances(ctx, cloud.Filter{Project: project})
}
