package core

import (
	"context"
	"strconv"
	"testing"

	"github.com/vovakirdan/homeboard/internal/store/memory"
)

func benchmarkBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(memory.New(), nil)
	go hub.Run(ctx)

	clients := make([]*Client, 0, recipients)
	for i := range recipients {
		c := NewClient("c" + strconv.Itoa(i))
		if err := hub.RegisterClient(c); err != nil {
			b.Fatalf("register: %v", err)
		}
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient so their queues stay short.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := hub.Dispatch(ctx, &Command{Kind: CommandNewMessage, Value: "payload"}); err != nil {
			b.Fatalf("dispatch: %v", err)
		}
		<-target.Events
	}
}

func BenchmarkBroadcast_10(b *testing.B)  { benchmarkBroadcast(b, 10) }
func BenchmarkBroadcast_100(b *testing.B) { benchmarkBroadcast(b, 100) }
func BenchmarkBroadcast_500(b *testing.B) { benchmarkBroadcast(b, 500) }
