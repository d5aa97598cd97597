// Package routing holds the provider fallback chain and the orchestrator
// that turns rider preferences into a finished route: optional
// LLM-assisted waypoint planning, ordered backend attempts, elevation
// enrichment and difficulty rating.
package routing

import (
	"context"
	"errors"

	"github.com/pedalpath/server/internal/lib/route"
)

// Provider is one routing backend adapter. Implementations translate the
// canonical waypoint list into their backend's request and the response
// back into the canonical schema.
type Provider interface {
	// Name is the provenance tag recorded on results this provider produced.
	Name() string

	// MaxIntermediateStops is the backend's hard cap on stops between
	// start and end; 0 means unlimited. The orchestrator truncates the
	// waypoint list before dispatching to a capped provider.
	MaxIntermediateStops() int

	Route(ctx context.Context, waypoints []route.Waypoint, opts route.Options) (*route.Result, error)
}

var (
	// ErrInvalidRequest means the caller's preferences cannot be routed at
	// all (missing or out-of-range coordinates). Nothing was attempted.
	ErrInvalidRequest = errors.New("invalid route request")

	// ErrProvidersExhausted means every provider in the chain failed. With
	// the local generator terminating the chain this should not happen in
	// a correctly assembled orchestrator.
	ErrProvidersExhausted = errors.New("all routing providers failed")
)
