// SPDX-License-Identifier: MIT

package congestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SubjectPrefix is the NATS subject prefix for congestion updates. The full
// subject is SubjectPrefix + building ID.
const SubjectPrefix = "indoornav.congestion."

// Update is the wire form of a congestion update. Each update replaces the
// previous snapshot for its building entirely.
type Update struct {
	Building string    `json:"building"`
	Edges    []Reading `json:"edges"`
	At       time.Time `json:"at"`
}

// Subject returns the NATS subject carrying updates for building.
func Subject(building string) string { return SubjectPrefix + building }

// subscriber is the part of *nats.Conn the Feed needs.
type subscriber interface {
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Feed keeps the latest congestion Snapshot for one building, fed by NATS
// messages. Routing code reads Current() and never blocks on the feed.
type Feed struct {
	conn     subscriber
	building string
	logger   *slog.Logger
	onUpdate func(Snapshot)

	current  atomic.Pointer[Snapshot]
	updated  atomic.Int64 // unix nanos of the last accepted update
	rejected atomic.Int64
	sub      *nats.Subscription
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithLogger sets the feed's logger. Default is slog.Default().
func WithLogger(l *slog.Logger) FeedOption {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithOnUpdate registers a callback invoked after each accepted update.
func WithOnUpdate(fn func(Snapshot)) FeedOption {
	return func(f *Feed) { f.onUpdate = fn }
}

// NewFeed creates a Feed for building over conn. It does not subscribe
// until Start is called. The initial snapshot is empty.
func NewFeed(conn *nats.Conn, building string, opts ...FeedOption) *Feed {
	return newFeed(conn, building, opts...)
}

func newFeed(conn subscriber, building string, opts ...FeedOption) *Feed {
	f := &Feed{
		conn:     conn,
		building: building,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.current.Store(&Snapshot{})
	return f
}

// Start subscribes to the building's update subject.
func (f *Feed) Start() error {
	sub, err := f.conn.Subscribe(Subject(f.building), f.handle)
	if err != nil {
		return fmt.Errorf("congestion: subscribe %s: %w", Subject(f.building), err)
	}
	f.sub = sub
	f.logger.Info("congestion feed started", "subject", Subject(f.building))
	return nil
}

// Stop unsubscribes. It is safe to call on a feed that was never started.
func (f *Feed) Stop() error {
	if f.sub == nil {
		return nil
	}
	err := f.sub.Unsubscribe()
	f.sub = nil
	return err
}

// Current returns the latest accepted snapshot.
func (f *Feed) Current() Snapshot { return *f.current.Load() }

// UpdatedAt returns when the last update was accepted, or the zero time.
func (f *Feed) UpdatedAt() time.Time {
	n := f.updated.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// Rejected returns how many updates were dropped as malformed or invalid.
func (f *Feed) Rejected() int64 { return f.rejected.Load() }

// handle decodes and applies one message. Invalid updates are rejected as a
// whole; the previous snapshot stays in effect.
func (f *Feed) handle(msg *nats.Msg) {
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), (*headerCarrier)(msg))
	_, span := otel.Tracer("indoornav/congestion").Start(ctx, "congestion.update")
	defer span.End()

	if err := f.apply(msg.Data); err != nil {
		f.rejected.Add(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.logger.Warn("congestion update rejected", "building", f.building, "err", err)
		return
	}
	span.SetAttributes(
		attribute.String("building", f.building),
		attribute.Int("edges", f.Current().Len()),
	)
}

func (f *Feed) apply(data []byte) error {
	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		return fmt.Errorf("congestion: decode update: %w", err)
	}
	if u.Building != "" && u.Building != f.building {
		return fmt.Errorf("congestion: update for building %q on feed %q", u.Building, f.building)
	}
	snap, err := FromReadings(u.Edges)
	if err != nil {
		return err
	}
	f.current.Store(&snap)
	f.updated.Store(time.Now().UnixNano())
	f.logger.Debug("congestion snapshot updated", "building", f.building, "edges", snap.Len())
	if f.onUpdate != nil {
		f.onUpdate(snap)
	}
	return nil
}

// Publish sends a full snapshot update for building. Trace context from ctx
// is injected into the message headers.
func Publish(ctx context.Context, nc *nats.Conn, building string, readings []Reading) error {
	if _, err := FromReadings(readings); err != nil {
		return err
	}
	data, err := json.Marshal(Update{Building: building, Edges: readings, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	msg := &nats.Msg{Subject: Subject(building), Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))
	return nc.PublishMsg(msg)
}

// headerCarrier adapts nats.Msg headers for OTel TextMapCarrier.
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}
