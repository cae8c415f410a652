package grafana

import (
	"errors"
	"fmt"
)

// Sentinel errors for organization operations
var (
	ErrOrgNotFound      = errors.New("organization not found")
	ErrOrgAlreadyExists = errors.New("organization already exists")
)

// APIError is returned when Grafana responded but reported a failure.
// It carries the operation that failed and the response body verbatim so the
// operator can see exactly what Grafana rejected.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: grafana returned HTTP %d: %s", e.Op, e.StatusCode, e.Detail)
}

// ConnectivityError is returned when Grafana could not be reached at all
// (DNS, connection refused, timeout). The message is intentionally stable and
// actionable regardless of the underlying transport failure, since the
// low-level detail is not something an operator can act on.
type ConnectivityError struct {
	BaseURL string
	Err     error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach Grafana at %s: check that the service is running and the configured URL is correct", e.BaseURL)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
