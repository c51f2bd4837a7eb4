package lifecycle

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens to a batch when one instance fails
type ErrorPolicy string

const (
	// PolicyContinue reports the failure and moves on to the next instance
	PolicyContinue ErrorPolicy = "continue"
	// PolicyAbort reports the failure and ends the command with an error
	PolicyAbort ErrorPolicy = "abort"
)

// DefaultErrorPolicy is used when no policy is configured
const DefaultErrorPolicy = PolicyContinue

// ParseErrorPolicy parses a policy name. An empty name yields the default.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultErrorPolicy, nil
	case PolicyContinue:
		return PolicyContinue, nil
	case PolicyAbort:
		return PolicyAbort, nil
	}
	return "", fmt.Errorf("invalid error policy %q (must be %q or %q)", s, PolicyContinue, PolicyAbort)
}
