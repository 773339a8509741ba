// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/indoornav/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNodeNotFound is returned when the start ID is absent.
	ErrStartNodeNotFound = errors.New("bfs: start node not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option (e.g. negative depth) is recorded and surfaced as
// ErrOptionViolation when BFS runs.
type Option func(*Options)

// Options holds parameters and callbacks for one traversal.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called for each node in visit order. A non-nil error
	// aborts the walk.
	OnVisit func(n core.Node, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this many hops.
	MaxDepth int

	// Follow reports whether the walk may cross the edge from curr to nb.
	Follow func(curr string, nb core.Neighbor) bool

	err error
}

// DefaultOptions returns Options with a background context, no depth limit
// and every edge followed.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(core.Node, int) error { return nil },
		Follow:  func(string, core.Neighbor) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(n core.Node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to d hops. d == 0 means no limit; d < 0 is
// an ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFollow restricts which edges the walk crosses.
func WithFollow(fn func(curr string, nb core.Neighbor) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Follow = fn
		}
	}
}

// SameFloor keeps the walk on the start node's floor by refusing
// floor-transition edges.
func SameFloor() Option {
	return WithFollow(func(_ string, nb core.Neighbor) bool { return !nb.FloorTransition })
}

// Result holds the outcome of a traversal.
type Result struct {
	Order []string       // nodes in visit order
	Depth map[string]int // hops from the start
}

// Reached reports whether id was visited.
func (r *Result) Reached(id string) bool {
	_, ok := r.Depth[id]
	return ok
}
