// Package lifecycle locates instances by project tag and drives them through
// list, start, stop and snapshot workflows.
//
// Every workflow follows the same shape: Locate yields the matching
// instances lazily, and the Operator acts on each one in turn, writing one
// line of comma-separated text per resource to its output. Calls are
// sequential; there is no fan-out across instances.
//
// Per-instance failures reported by the provider (a cloud.ClientError or a
// wait timeout) are handled according to the ErrorPolicy. Under
// PolicyContinue they are reported and the batch moves on; under
// PolicyAbort the first one ends the command. Any other error, such as a
// transport or credential failure, always ends the command.
package lifecycle
