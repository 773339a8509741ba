// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dijkstra"
	"github.com/katalvlaran/indoornav/directions"
	"github.com/katalvlaran/indoornav/internal/ctxlog"
	"github.com/katalvlaran/indoornav/navigator"
	"github.com/katalvlaran/indoornav/parser"
	"github.com/katalvlaran/indoornav/standardize"
)

const tracerName = "github.com/katalvlaran/indoornav/server"

type errorBody struct {
	Error string `json:"error"`
	Role  string `json:"role,omitempty"`
	Name  string `json:"name,omitempty"`
}

// RouteRequest is the body of POST /v1/route. Congestion, when present,
// replaces the live snapshot for this request.
type RouteRequest struct {
	Text       string               `json:"text" binding:"required"`
	Start      string               `json:"start,omitempty"`
	Congestion []congestion.Reading `json:"congestion,omitempty"`
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseResponse is the reply of POST /v1/parse.
type ParseResponse struct {
	Parsed       parser.ParsedInstruction `json:"parsed"`
	Standardized string                   `json:"standardized"`
}

// LocationInfo is one entry of GET /v1/locations.
type LocationInfo struct {
	Name   string `json:"name"`
	NodeID string `json:"node_id"`
	Floor  int    `json:"floor"`
}

func (s *Server) handleRoute(c *gin.Context) {
	ctx, span := otel.Tracer(tracerName).Start(c.Request.Context(), "navigator.ComputeRoute")
	defer span.End()

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	// 1) Congestion: request override or live feed.
	snap := s.snapshots.Current()
	if len(req.Congestion) > 0 {
		var err error
		if snap, err = congestion.FromReadings(req.Congestion); err != nil {
			s.metrics.routes.WithLabelValues("bad_congestion").Inc()
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
	}
	span.SetAttributes(attribute.Int("congestion.edges", snap.Len()))

	// 2) Route
	res, err := s.nav.ComputeRouteContext(ctx, req.Text, req.Start, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeRouteError(c, err)
		return
	}

	// 3) Respond
	if res.NeedsClarification {
		s.metrics.routes.WithLabelValues("clarify").Inc()
		span.SetAttributes(attribute.Bool("route.needs_clarification", true))
		c.JSON(http.StatusOK, res)
		return
	}

	congested := len(directions.Congested(res.Segments))
	s.metrics.routes.WithLabelValues(res.Parsed.CommandType.String()).Inc()
	s.metrics.distance.Observe(res.Distance)
	s.metrics.congested.Observe(float64(congested))
	span.SetAttributes(
		attribute.String("route.command", res.Parsed.CommandType.String()),
		attribute.String("route.from", res.Start.ID),
		attribute.String("route.to", res.Destination.ID),
		attribute.Int("route.hops", res.Path.Hops()),
		attribute.Float64("route.distance", res.Distance),
		attribute.Int("route.congested_segments", congested),
	)
	c.JSON(http.StatusOK, res)
}

func (s *Server) writeRouteError(c *gin.Context, err error) {
	var lerr *navigator.LocationError
	switch {
	case errors.As(err, &lerr):
		s.metrics.routes.WithLabelValues("location_not_found").Inc()
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error(), Role: string(lerr.Role), Name: lerr.Name})
	case errors.Is(err, dijkstra.ErrNoPathFound):
		s.metrics.routes.WithLabelValues("no_path").Inc()
		c.JSON(http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	default:
		s.metrics.routes.WithLabelValues("other").Inc()
		ctxlog.FromContextOr(c.Request.Context(), s.logger).Error("route failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func (s *Server) handleParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ParseResponse{
		Parsed:       s.nav.Parse(req.Text),
		Standardized: standardize.Standardize(req.Text),
	})
}

func (s *Server) handleLocations(c *gin.Context) {
	g := s.nav.Graph()

	floor, filter := 0, false
	if q, ok := c.GetQuery("floor"); ok {
		f, err := strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Error: "floor must be an integer"})
			return
		}
		floor, filter = f, true
	}

	out := make([]LocationInfo, 0)
	for _, l := range g.Locations() {
		n, err := g.Node(l.NodeID)
		if err != nil {
			continue
		}
		if filter && n.Floor != floor {
			continue
		}
		out = append(out, LocationInfo{Name: l.Name, NodeID: n.ID, Floor: n.Floor})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleReload(c *gin.Context) {
	if s.reload == nil {
		c.JSON(http.StatusNotImplemented, errorBody{Error: "no building source configured"})
		return
	}
	rep, err := s.nav.Reload(c.Request.Context(), s.reload)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, building.ErrNoNodes) || errors.Is(err, core.ErrInvalidDistance) ||
			errors.Is(err, core.ErrDuplicateNode) || errors.Is(err, core.ErrDuplicateEdge) ||
			errors.Is(err, core.ErrUnknownNode) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, errorBody{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":          rep.OK(),
		"root":        rep.Root,
		"stats":       rep.Stats,
		"unreachable": rep.Unreachable,
		"isolated":    rep.Isolated,
		"cut_nodes":   rep.CutNodes,
		"stranded":    rep.Stranded,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.nav.Graph().Stats()
	body := gin.H{
		"status":           "ok",
		"nodes":            st.NodeCount,
		"edges":            st.EdgeCount,
		"locations":        st.LocationCount,
		"floors":           st.FloorCount,
		"congestion_edges": s.snapshots.Current().Len(),
	}
	if f, ok := s.snapshots.(*congestion.Feed); ok {
		if at := f.UpdatedAt(); !at.IsZero() {
			body["congestion_updated_at"] = at.UTC().Format(time.RFC3339)
		}
	}
	c.JSON(http.StatusOK, body)
}
