package redispass

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	fsio "github.com/matzehuels/framescope/pkg/io"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/recorder"
)

func cardFrames() fsio.Frames {
	return fsio.Frames{
		Width:  320,
		Height: 480,
		Nodes: []node.Node{
			{ID: "card", Frame: geometry.NewRect(0, 0, 200, 120)},
			{ID: "title", ParentID: "card", Frame: geometry.NewRect(16, 16, 120, 24)},
		},
	}
}

func TestHandle(t *testing.T) {
	logger := log.New(io.Discard)
	rec := recorder.New(logger)
	s := NewSubscriber(nil, "test", rec, logger)

	var seen fsio.Frames
	s.OnFrames = func(f fsio.Frames) { seen = f }

	data, err := fsio.EncodeFrames(cardFrames())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		payload []byte
		want    bool
	}{
		{"valid pass", data, true},
		{"garbage", []byte("not json"), false},
		{"invalid frame", []byte(`{"nodes":[{"id":"a","frame":{"x":0,"y":0,"width":-1,"height":1}}]}`), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.handle(context.Background(), tt.payload); got != tt.want {
				t.Errorf("handle() = %v, want %v", got, tt.want)
			}
		})
	}

	if rec.Passes() != 1 {
		t.Errorf("Passes() = %d, want 1", rec.Passes())
	}
	if nodes := rec.Current().Nodes(); len(nodes) != 2 || nodes[0].ID != "title" {
		t.Errorf("current = %v, want render order [title card]", nodes)
	}
	if seen.Width != 320 {
		t.Errorf("OnFrames width = %g, want 320", seen.Width)
	}
}

func TestHandleWhileDisabled(t *testing.T) {
	logger := log.New(io.Discard)
	rec := recorder.New(logger)
	rec.SetEnabled(false)
	s := NewSubscriber(nil, "test", rec, logger)

	called := false
	s.OnFrames = func(fsio.Frames) { called = true }

	data, err := fsio.EncodeFrames(cardFrames())
	if err != nil {
		t.Fatal(err)
	}
	if s.handle(context.Background(), data) {
		t.Error("handle() = true while recording is disabled")
	}
	if called {
		t.Error("OnFrames called while recording is disabled")
	}
	if rec.Passes() != 0 {
		t.Errorf("Passes() = %d, want 0", rec.Passes())
	}
}

func TestPublishRejectsInvalidFrames(t *testing.T) {
	p := NewPublisher(nil, "test", log.New(io.Discard))
	bad := fsio.Frames{Nodes: []node.Node{{ID: ""}}}
	if _, err := p.Publish(context.Background(), bad); !errors.Is(err, errors.ErrCodeInvalidNodeID) {
		t.Errorf("Publish() error = %v, want INVALID_NODE_ID", err)
	}
}

// TestRoundTrip needs a live server; set FRAMESCOPE_REDIS_ADDR to run it.
func TestRoundTrip(t *testing.T) {
	addr := os.Getenv("FRAMESCOPE_REDIS_ADDR")
	if addr == "" {
		t.Skip("FRAMESCOPE_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewClient(ctx, addr)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	logger := log.New(io.Discard)
	channel := "framescope:test:" + uuid.NewString()
	rec := recorder.New(logger)

	got := make(chan node.Set, 1)
	rec.Subscribe(func(set node.Set) {
		select {
		case got <- set:
		default:
		}
	})

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- NewSubscriber(client, channel, rec, logger).Run(runCtx) }()

	pub := NewPublisher(client, channel, logger)
	// Publish until the subscription is live.
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		if n, err := pub.Publish(ctx, cardFrames()); err != nil {
			t.Fatal(err)
		} else if n > 0 {
			break
		}
		select {
		case <-tick.C:
		case <-ctx.Done():
			t.Fatal("subscriber never came up")
		}
	}

	select {
	case set := <-got:
		if set.Len() != 2 {
			t.Errorf("received %d nodes, want 2", set.Len())
		}
	case <-ctx.Done():
		t.Fatal("no pass received")
	}

	stop()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v, want nil after cancel", err)
	}
}
