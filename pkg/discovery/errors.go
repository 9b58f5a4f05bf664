package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is returned when a run cannot be started for the given target
	ErrInvalidTarget = errors.New("invalid target")
	// ErrProbeTransportUnavailable is reported when the selected probe strategy cannot run
	ErrProbeTransportUnavailable = errors.New("probe transport unavailable")
)

// ProbeNetworkError wraps a transport failure for a single probe
type ProbeNetworkError struct {
	URL      string
	Err      error
	TimedOut bool
}

func (e *ProbeNetworkError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("probe %s timed out: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("probe %s failed: %v", e.URL, e.Err)
}

func (e *ProbeNetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the probe failed because its deadline passed
func (e *ProbeNetworkError) Timeout() bool {
	return e.TimedOut
}
