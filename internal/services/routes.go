// Package services exposes route generation over HTTP: a generate
// endpoint driving the orchestrator, retrieval of stored results by ID
// and KML export for mapping tools.
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pedalpath/server/internal/lib/geo"
	"github.com/pedalpath/server/internal/lib/route"
	"github.com/pedalpath/server/internal/lib/units"
	"github.com/pedalpath/server/internal/routing"
)

// RouteGenerator produces a route from rider preferences. Satisfied by
// *routing.Orchestrator; faked in tests.
type RouteGenerator interface {
	Generate(ctx context.Context, prefs route.Preferences) (*route.Result, error)
}

// RoutesService handles the route-generation HTTP surface.
type RoutesService struct {
	generator RouteGenerator
	store     *Store
	logger    *zap.Logger
}

// NewRoutesService creates the service around a generator and a store.
func NewRoutesService(generator RouteGenerator, store *Store, logger *zap.Logger) *RoutesService {
	return &RoutesService{
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// RegisterRoutes registers all route endpoints.
func (s *RoutesService) RegisterRoutes(r gin.IRouter) {
	routes := r.Group("/api/v1/routes")
	{
		routes.POST("/generate", s.GenerateRoute)
		routes.GET("/:id", s.GetRoute)
		routes.GET("/:id/export.kml", s.ExportKML)
	}
}

type coordinatePayload struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

// GenerateRouteRequest is the inbound request body. Start is required;
// a missing end makes the route a loop.
type GenerateRouteRequest struct {
	Start             *coordinatePayload `json:"start" binding:"required"`
	End               *coordinatePayload `json:"end"`
	TargetDistance    float64            `json:"target_distance"`
	Units             string             `json:"units"`
	Flavor            string             `json:"flavor"`
	UseBikeLanes      bool               `json:"use_bike_lanes"`
	AvoidTraffic      bool               `json:"avoid_traffic"`
	AvoidHills        bool               `json:"avoid_hills"`
	ElevationFocus    bool               `json:"elevation_focus"`
	CustomDescription string             `json:"custom_description"`
	StartName         string             `json:"start_name"`
	EndName           string             `json:"end_name"`
}

func (r *GenerateRouteRequest) preferences() route.Preferences {
	prefs := route.Preferences{
		Start:             geo.Point{Latitude: *r.Start.Lat, Longitude: *r.Start.Lon},
		TargetDistance:    r.TargetDistance,
		Units:             units.System(r.Units),
		Flavor:            route.Flavor(r.Flavor),
		UseBikeLanes:      r.UseBikeLanes,
		AvoidTraffic:      r.AvoidTraffic,
		AvoidHills:        r.AvoidHills,
		ElevationFocus:    r.ElevationFocus,
		CustomDescription: r.CustomDescription,
		StartName:         r.StartName,
		EndName:           r.EndName,
	}
	if r.End != nil {
		prefs.End = &geo.Point{Latitude: *r.End.Lat, Longitude: *r.End.Lon}
	}
	if !prefs.Units.Valid() {
		prefs.Units = units.Metric
	}
	if prefs.Flavor == "" {
		prefs.Flavor = route.FlavorScenic
	}
	return prefs
}

// RouteView is the outbound representation: the canonical result plus
// display-ready formatted strings.
type RouteView struct {
	ID              string        `json:"id"`
	Route           *route.Result `json:"route"`
	DistanceDisplay string        `json:"distance_display"`
	DurationDisplay string        `json:"duration_display"`
}

func routeView(id string, result *route.Result, system units.System) RouteView {
	return RouteView{
		ID:              id,
		Route:           result,
		DistanceDisplay: units.FormatDistance(result.DistanceMeters, system),
		DurationDisplay: units.FormatDuration(result.DurationSeconds),
	}
}

// GenerateRoute runs the full pipeline and stores the result for
// follow-up retrieval.
func (s *RoutesService) GenerateRoute(c *gin.Context) {
	var request GenerateRouteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := request.preferences()
	result, err := s.generator.Generate(c.Request.Context(), prefs)
	if err != nil {
		s.respondError(c, err)
		return
	}

	id := s.store.Put(result, prefs.Units)
	c.JSON(http.StatusOK, routeView(id, result, prefs.Units))
}

// GetRoute returns a previously generated route by ID.
func (s *RoutesService) GetRoute(c *gin.Context) {
	stored, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}
	c.JSON(http.StatusOK, routeView(stored.ID, stored.Result, stored.Units))
}

// ExportKML renders a stored route as a KML document.
func (s *RoutesService) ExportKML(c *gin.Context) {
	stored, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}

	c.Header("Content-Type", kmlContentType)
	c.Status(http.StatusOK)
	if err := writeKML(c.Writer, stored.Result); err != nil {
		s.logger.Error("kml export failed", zap.String("route_id", stored.ID), zap.Error(err))
	}
}

func (s *RoutesService) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routing.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, routing.ErrProvidersExhausted):
		c.JSON(http.StatusBadGateway, gin.H{"error": "no routing backend could produce a route"})
	default:
		s.logger.Error("route generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
