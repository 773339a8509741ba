// SPDX-License-Identifier: MIT

// Package navigator turns a spoken request into a route through a building.
//
// ComputeRoute runs the whole pipeline for one request:
//
//	raw text ─ parser ─▶ ParsedInstruction
//	start, destination ─ alias lookup ─▶ node IDs
//	dijkstra (congestion-aware) ─▶ Path
//	directions ─▶ instructions, segments, time estimate
//
// A Navigator holds the current building graph behind an atomic pointer.
// Requests read it without locks; Swap and Reload replace it whole, so a
// request always sees one consistent graph.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/dijkstra"
	"github.com/katalvlaran/indoornav/directions"
	"github.com/katalvlaran/indoornav/internal/ctxlog"
	"github.com/katalvlaran/indoornav/parser"
	"github.com/katalvlaran/indoornav/standardize"
)

// DefaultStart is the start location used when a request gives none.
const DefaultStart = "1楼大厅"

var (
	// ErrUnparseableInstruction is reported by Result.Err when the text
	// named no location.
	ErrUnparseableInstruction = errors.New("navigator: instruction names no location")

	// ErrNilGraph indicates that no graph was supplied.
	ErrNilGraph = errors.New("navigator: graph is nil")
)

// Role names the request field a LocationError refers to.
type Role string

const (
	RoleStart       Role = "start"
	RoleDestination Role = "destination"
)

// LocationError reports a start or destination that matches no node or
// alias. It unwraps to core.ErrLocationNotFound.
type LocationError struct {
	Role Role
	Name string
}

func (e *LocationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("navigator: no %s location given", e.Role)
	}
	return fmt.Sprintf("navigator: %s location %q not found", e.Role, e.Name)
}

func (e *LocationError) Unwrap() error { return core.ErrLocationNotFound }

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. A logger carried by the request context takes
// precedence.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithDefaultStart sets the start location for requests without one. An
// empty name disables the default.
func WithDefaultStart(name string) Option {
	return func(n *Navigator) { n.defaultStart = name }
}

// WithParser replaces the instruction parser.
func WithParser(p *parser.Parser) Option {
	if p == nil {
		panic("navigator: WithParser(nil)")
	}
	return func(n *Navigator) { n.parser = p }
}

// WithPace sets the walking model used for time estimates.
func WithPace(p directions.Pace) Option {
	if !(p.WalkingSpeed > 0) {
		panic("navigator: WithPace: walking speed must be positive")
	}
	return func(n *Navigator) { n.pace = p }
}

// WithCostFunc replaces the congestion cost model used for routing.
func WithCostFunc(fn dijkstra.CostFunc) Option {
	if fn == nil {
		panic("navigator: WithCostFunc(nil)")
	}
	return func(n *Navigator) { n.cost = fn }
}

// Navigator answers routing requests against a swappable building graph.
// It is safe for concurrent use.
type Navigator struct {
	graph atomic.Pointer[core.Graph]

	parser       *parser.Parser
	pace         directions.Pace
	cost         dijkstra.CostFunc
	defaultStart string
	logger       *slog.Logger
}

// New returns a Navigator serving g.
func New(g *core.Graph, opts ...Option) (*Navigator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := &Navigator{
		parser:       parser.New(),
		pace:         directions.DefaultPace(),
		cost:         dijkstra.EffectiveCost,
		defaultStart: DefaultStart,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.graph.Store(g)
	return n, nil
}

// Graph returns the graph currently served.
func (n *Navigator) Graph() *core.Graph { return n.graph.Load() }

// Swap replaces the served graph. In-flight requests finish on the old one.
func (n *Navigator) Swap(g *core.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	n.graph.Store(g)
	return nil
}

// Reload loads src, validates it from the default start and swaps it in.
// On any error the current graph stays in place.
func (n *Navigator) Reload(ctx context.Context, src building.Source) (building.Report, error) {
	logger := ctxlog.FromContextOr(ctx, n.logger)
	g, rep, err := building.Load(ctxlog.WithLogger(ctx, logger), src, n.defaultStart)
	if err != nil {
		logger.Error("building reload failed", "error", err)
		return building.Report{}, err
	}
	n.graph.Store(g)
	logger.Info("building graph swapped", "nodes", rep.Stats.NodeCount, "edges", rep.Stats.EdgeCount)
	return rep, nil
}

// Parse classifies raw without routing.
func (n *Navigator) Parse(raw string) parser.ParsedInstruction {
	return n.parser.Parse(raw)
}

// Locate resolves name on the current graph. See locate for the lookup
// order.
func (n *Navigator) Locate(name string) (core.Node, error) {
	return locate(n.graph.Load(), name, RoleDestination)
}

// ComputeRoute is ComputeRouteContext with a background context.
func (n *Navigator) ComputeRoute(raw, start string, snap congestion.Snapshot) (*Result, error) {
	return n.ComputeRouteContext(context.Background(), raw, start, snap)
}

// ComputeRouteContext parses raw, resolves start and destination, and routes
// between them under snap.
//
// An utterance without a location is not an error: the Result has
// NeedsClarification set and Err returns ErrUnparseableInstruction. Missing
// locations are *LocationError; disconnected endpoints give
// dijkstra.ErrNoPathFound.
func (n *Navigator) ComputeRouteContext(ctx context.Context, raw, start string, snap congestion.Snapshot) (*Result, error) {
	logger := ctxlog.FromContextOr(ctx, n.logger)
	g := n.graph.Load()
	began := time.Now()

	// 1) Parse
	parsed := n.parser.Parse(raw)
	res := &Result{Parsed: parsed}

	switch parsed.CommandType {
	case parser.Unparseable:
		res.NeedsClarification = true
		logger.Info("instruction needs clarification", "text", raw)
		return res, nil
	case parser.Navigate, parser.Search:
	default:
		return nil, fmt.Errorf("navigator: %w: %v", parser.ErrUnknownCommandType, parsed.CommandType)
	}

	// 2) Resolve endpoints
	if start == "" {
		start = n.defaultStart
	}
	from, err := locate(g, start, RoleStart)
	if err != nil {
		return nil, err
	}
	to, err := locate(g, parsed.Destination, RoleDestination)
	if err != nil {
		return nil, err
	}
	res.Start, res.Destination = from, to

	// 3) Route
	found, err := dijkstra.Find(g, from.ID, to.ID,
		dijkstra.WithCongestion(snap),
		dijkstra.WithCostFunc(n.cost),
	)
	if err != nil {
		logger.Warn("no route", "from", from.ID, "to", to.ID, "error", err)
		return nil, fmt.Errorf("navigator: route %s-%s: %w", from.ID, to.ID, err)
	}
	res.Path, res.Cost, res.Distance = found.Path, found.Cost, found.Distance

	// 4) Describe
	if res.Instructions, err = directions.Generate(found.Path, g); err != nil {
		return nil, err
	}
	if res.Segments, err = directions.Segments(found.Path, g, snap); err != nil {
		return nil, err
	}
	res.EstimatedSeconds = n.pace.Estimate(res.Segments)

	logger.Info("route computed",
		"command", parsed.CommandType.String(),
		"from", from.ID, "to", to.ID,
		"hops", found.Path.Hops(), "distance", found.Distance,
		"congested", len(directions.Congested(res.Segments)),
		"elapsed", time.Since(began))
	return res, nil
}

// locate resolves name as a node ID, then as an alias, then as the alias
// of its standardized form.
func locate(g *core.Graph, name string, role Role) (core.Node, error) {
	if name == "" {
		return core.Node{}, &LocationError{Role: role}
	}
	if node, err := g.Node(name); err == nil {
		return node, nil
	}
	if node, err := g.NodeByLocation(name); err == nil {
		return node, nil
	}
	if std := standardize.Standardize(name); std != name {
		if node, err := g.NodeByLocation(std); err == nil {
			return node, nil
		}
	}
	return core.Node{}, &LocationError{Role: role, Name: name}
}
