package route

import "errors"

var (
	// ErrNoRoute means a backend answered successfully but its response
	// carried no usable route. Adapters return it wrapped; the fallback
	// chain treats it as a soft failure.
	ErrNoRoute = errors.New("no route in backend response")

	// ErrBadGeometry means a backend claimed success but its encoded path
	// could not be decoded. This indicates a backend bug rather than a
	// caller mistake; it is logged as an anomaly and then handled like any
	// other soft failure.
	ErrBadGeometry = errors.New("malformed route geometry in backend response")

	// ErrTooManyStops means the waypoint list exceeds a provider's hard
	// stop cap. Callers avoid it by truncating before dispatch.
	ErrTooManyStops = errors.New("waypoint list exceeds provider stop cap")
)
