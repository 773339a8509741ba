//go:build integration

package congestion

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func natsURL() string {
	if v := os.Getenv("NATS_URL"); v != "" {
		return v
	}
	return nats.DefaultURL
}

func TestFeed_NATSRoundTrip(t *testing.T) {
	nc, err := nats.Connect(natsURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	updated := make(chan Snapshot, 1)
	f := NewFeed(nc, "integ", WithLogger(quietLogger()), WithOnUpdate(func(s Snapshot) { updated <- s }))
	require.NoError(t, f.Start())
	t.Cleanup(func() { _ = f.Stop() })

	err = Publish(context.Background(), nc, "integ", []Reading{{From: "B1", To: "C", Factor: 0.8}})
	require.NoError(t, err)

	select {
	case s := <-updated:
		require.Equal(t, 0.8, s.Factor("C", "B1"))
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for congestion update")
	}
}
