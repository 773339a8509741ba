// SPDX-License-Identifier: MIT

package dfs

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed in.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartNodeNotFound indicates that the start ID does not exist.
	ErrStartNodeNotFound = errors.New("dfs: start node not found")
)

// Option configures DFS.
type Option func(*Options)

// Options holds the parameters of one traversal.
type Options struct {
	// Ctx is checked on every node entry.
	Ctx context.Context

	// OnVisit runs on discovery (pre-order). An error aborts the walk.
	OnVisit func(id string, depth int) error

	// OnExit runs after all descendants are done (post-order).
	OnExit func(id string) error

	// FullTraversal restarts from every unvisited node in ID order.
	FullTraversal bool
}

// DefaultOptions returns a background context and no hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the context checked during the walk.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(id string) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithFullTraversal walks every component, not just the start's.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

// Result is the outcome of a traversal.
type Result struct {
	// Order lists nodes in finish (post-order) sequence.
	Order []string

	// Depth is each visited node's tree depth from its root.
	Depth map[string]int

	// Parent is each non-root node's discoverer.
	Parent map[string]string
}

// Visited reports whether id was reached.
func (r *Result) Visited(id string) bool {
	_, ok := r.Depth[id]
	return ok
}
