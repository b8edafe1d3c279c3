package core

// registry is the set of clients receiving broadcasts. Only the hub loop touches it.
type registry struct {
	clients map[*Client]struct{}
}

func newRegistry() *registry {
	return &registry{clients: make(map[*Client]struct{})}
}

// add inserts a client. Returns true if newly added.
func (r *registry) add(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// remove deletes a client. Returns true if removed.
func (r *registry) remove(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// broadcast queues an event for every client and returns the clients whose
// queue was full. The caller evicts them.
func (r *registry) broadcast(event *Event) []*Client {
	var slow []*Client
	for client := range r.clients {
		if !client.enqueue(event) {
			slow = append(slow, client)
		}
	}
	return slow
}

func (r *registry) len() int {
	return len(r.clients)
}
