package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/homeboard/internal/metrics"
	"github.com/vovakirdan/homeboard/internal/store"
)

const commandBuffer = 64

// request is a queued command. applied, when set, receives the outcome once
// the run loop has handled it.
type request struct {
	cmd     *Command
	applied chan error
}

// Hub appends new entries to the shared lists and fans each one out to every
// registered client. A single Run loop owns the client registry and performs
// append-then-broadcast for one command at a time, so broadcast order matches
// list order.
type Hub struct {
	store store.Store
	log   *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan request
	done       chan struct{}

	clients *registry
}

// NewHub creates a hub backed by st. A nil logger discards output.
func NewHub(st store.Store, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		store:      st,
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan request, commandBuffer),
		done:       make(chan struct{}),
		clients:    newRegistry(),
	}
}

// Run processes registrations and commands until ctx is cancelled.
// On exit every still-registered client has its Events channel closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients.clients {
				h.clients.remove(c)
				c.stop()
			}
			metrics.ConnectedClients.Set(0)
			h.log.Debug().Msg("hub stopped")
			return
		case c := <-h.register:
			// A stopped client has already closed Events and cannot rejoin.
			if !c.stopped() && h.clients.add(c) {
				c.start()
				metrics.ConnectedClients.Inc()
				h.log.Debug().Str("client_id", c.ID).Int("clients", h.clients.len()).Msg("client registered")
			}
		case c := <-h.unregister:
			if h.clients.remove(c) {
				c.stop()
				metrics.ConnectedClients.Dec()
				h.log.Debug().Str("client_id", c.ID).Int("clients", h.clients.len()).Msg("client unregistered")
			}
		case req := <-h.commands:
			err := h.handle(ctx, req.cmd)
			if req.applied != nil {
				req.applied <- err
			}
		}
	}
}

// RegisterClient subscribes c to broadcasts.
func (h *Hub) RegisterClient(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// UnregisterClient removes c and closes its Events channel.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Dispatch queues cmd for the run loop. It returns once the command is queued,
// not once it has been applied.
func (h *Hub) Dispatch(ctx context.Context, cmd *Command) error {
	return h.enqueue(ctx, request{cmd: cmd})
}

// Apply queues cmd and waits until the run loop has appended and broadcast it.
// It returns the append error, if any.
func (h *Hub) Apply(ctx context.Context, cmd *Command) error {
	applied := make(chan error, 1)
	if err := h.enqueue(ctx, request{cmd: cmd, applied: applied}); err != nil {
		return err
	}

	select {
	case err := <-applied:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		select {
		case err := <-applied:
			return err
		default:
			return ErrHubStopped
		}
	}
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) enqueue(ctx context.Context, req request) error {
	cmd := req.cmd
	if cmd == nil {
		return fmt.Errorf("dispatch: %w", ErrUnknownCommand)
	}
	if _, ok := cmd.Kind.List(); !ok {
		return fmt.Errorf("dispatch kind %d: %w", cmd.Kind, ErrUnknownCommand)
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.commands <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) handle(ctx context.Context, cmd *Command) error {
	list, _ := cmd.Kind.List()
	kind, _ := cmd.Kind.Event()

	if err := h.store.Append(ctx, list, cmd.Value); err != nil {
		h.log.Error().Err(err).Str("list", string(list)).Msg("append failed, event dropped")
		return fmt.Errorf("append %s: %w", list, err)
	}
	metrics.EntriesAppended.WithLabelValues(string(list)).Inc()

	for _, c := range h.clients.broadcast(&Event{Kind: kind, Value: cmd.Value}) {
		h.clients.remove(c)
		c.stop()
		metrics.ConnectedClients.Dec()
		metrics.ClientsEvicted.Inc()
		h.log.Warn().Str("client_id", c.ID).Str("event", kind.String()).Msg("client fell behind, evicted")
	}
	return nil
}
