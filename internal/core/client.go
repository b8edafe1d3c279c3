package core

import "sync"

// clientBuffer is the capacity of a client's Events channel.
const clientBuffer = 64

// maxPending caps how many events may queue behind a full Events channel.
// A client past the cap is evicted instead of silently missing events.
var maxPending = 4096

// Client is a connected dashboard as seen by the core layer. Events are
// delivered in broadcast order and none are skipped while the client is
// registered.
type Client struct {
	ID     string
	Events chan *Event

	mu      sync.Mutex
	pending []*Event
	wake    chan struct{}
	quit    chan struct{}
	once    sync.Once
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, clientBuffer),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
}

// start launches the goroutine that moves queued events into Events.
func (c *Client) start() {
	go c.pump()
}

// enqueue appends ev without blocking. It returns false if the queue is full.
func (c *Client) enqueue(ev *Event) bool {
	c.mu.Lock()
	if len(c.pending) >= maxPending {
		c.mu.Unlock()
		return false
	}
	c.pending = append(c.pending, ev)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return true
}

// stop ends delivery. Events is closed once the pump exits; queued events
// that were not yet handed over are discarded.
func (c *Client) stop() {
	c.once.Do(func() { close(c.quit) })
}

func (c *Client) stopped() bool {
	select {
	case <-c.quit:
		return true
	default:
		return false
	}
}

func (c *Client) pump() {
	defer close(c.Events)

	for {
		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()

		for _, ev := range batch {
			select {
			case c.Events <- ev:
			case <-c.quit:
				return
			}
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-c.wake:
		case <-c.quit:
			return
		}
	}
}
