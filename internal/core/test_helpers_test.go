package core

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/homeboard/internal/store"
	"github.com/vovakirdan/homeboard/internal/store/memory"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustList(t *testing.T, st store.Store, l store.List, n int) []string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := st.List(context.Background(), l)
		if err != nil {
			t.Fatalf("list %s: %v", l, err)
		}
		if len(got) >= n || time.Now().After(deadline) {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startHub(t *testing.T) (*Hub, store.Store) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	st := memory.New()
	hub := NewHub(st, nil)
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})
	return hub, st
}

func mustRegister(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	c := NewClient(id)
	if err := hub.RegisterClient(c); err != nil {
		t.Fatalf("register %s: %v", id, err)
	}
	return c
}
