package registry

import "fmt"

// StatusError is returned when the registry answers with a non-2xx status. The status
// code and raw body are surfaced verbatim to the caller.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error occurred: %d - %s", e.StatusCode, e.Body)
}

// UnavailableError is returned for transport-level faults: DNS failure, connection
// reset, timeout. The single request attempt is the full contract, nothing is retried.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("registry unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
