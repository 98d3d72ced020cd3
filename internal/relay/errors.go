package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for relay transport failures.
var (
	// ErrUnreachable indicates the backend could not be reached at all.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrTimeout indicates the backend did not answer within the deadline.
	ErrTimeout = errors.New("backend timed out")

	// ErrBackend indicates the backend answered with a non-200 status.
	ErrBackend = errors.New("backend error")
)

// mapConnectionError maps network-level failures to relay sentinel errors.
func mapConnectionError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}
