package upstream

import (
	"errors"
	"fmt"
)

// Sentinel kinds for upstream errors.
var (
	ErrTransport      = errors.New("upstream transport failed")
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	ErrDecode         = errors.New("upstream payload could not be decoded")
	ErrUpstreamResult = errors.New("upstream reported an error result")
)

// StatusError carries the status code and a bounded prefix of the body of a
// non-2xx upstream reply.
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// Unwrap lets callers match with errors.Is(err, ErrUpstreamStatus).
func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }
