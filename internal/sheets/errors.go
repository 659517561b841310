package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// errTransient marks upstream failures that may clear on retry (quota, 5xx,
// transport). After the retry budget is exhausted it is surfaced to callers
// as domain.ErrUpstreamUnavailable.
var errTransient = errors.New("sheets: transient upstream failure")

// classify maps a raw API error onto the service's error kinds.
//
// 401/403 become domain.ErrCredentialRejected and are never retried: the
// bearer token expired between the freshness check and use, and retrying
// with the same token cannot succeed. 429 and 5xx are transient. Anything
// else (bad range, missing tab) is a caller problem and passes through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: status %d", domain.ErrCredentialRejected, gerr.Code)
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500:
			return fmt.Errorf("%w: status %d", errTransient, gerr.Code)
		default:
			return err
		}
	}

	// No structured API error means the request never completed; treat
	// connection-level failures as transient.
	return fmt.Errorf("%w: %v", errTransient, err)
}

// isTransient reports whether a classified error is worth retrying.
func isTransient(err error) bool {
	return errors.Is(err, errTransient)
}
