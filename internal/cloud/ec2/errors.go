package ec2

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
)

// credentialErrorCodes are API errors caused by the session rather than by
// the resource. They are left unclassified so that they abort the command.
var credentialErrorCodes = map[string]bool{
	"AuthFailure":           true,
	"InvalidClientTokenId":  true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
	"RequestExpired":        true,
	"OptInRequired":         true,
}

// classify converts a resource-level API error into a *cloud.ClientError.
// Transport, server and credential errors are returned unchanged.
func classify(resourceID string, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.ErrorFault() == smithy.FaultServer || credentialErrorCodes[apiErr.ErrorCode()] {
		return err
	}

	return &cloud.ClientError{
		Code:       apiErr.ErrorCode(),
		Message:    apiErr.ErrorMessage(),
		ResourceID: resourceID,
		Cause:      err,
	}
}

// classifyWait maps waiter errors onto cloud errors. The SDK waiters only
// report expiry and failure states through their messages.
func classifyWait(ctx context.Context, resourceID string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "exceeded max wait time"), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", cloud.ErrWaitTimeout, msg)
	case strings.Contains(msg, "transitioned to Failure"):
		return &cloud.ClientError{
			Code:       "IncorrectInstanceState",
			Message:    msg,
			ResourceID: resourceID,
			Cause:      err,
		}
	}

	return classify(resourceID, err)
}
