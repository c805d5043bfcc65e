package certificates

import "errors"

// Error kinds surfaced at the service boundary. Handlers map these to
// HTTP statuses; everything else is an internal failure.
var (
	ErrNotFound              = errors.New("certificate not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRenderFailure         = errors.New("certificate render failed")
)
