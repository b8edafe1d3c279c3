package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMessageUpdate announces a new chat message.
	EventMessageUpdate EventKind = iota
	// EventShoppingUpdate announces a new shopping list item.
	EventShoppingUpdate
	// EventTaskUpdate announces a new task.
	EventTaskUpdate
	// EventImageUpdate announces a newly uploaded image.
	EventImageUpdate
)

func (k EventKind) String() string {
	switch k {
	case EventMessageUpdate:
		return "message_update"
	case EventShoppingUpdate:
		return "shopping_update"
	case EventTaskUpdate:
		return "task_update"
	case EventImageUpdate:
		return "image_update"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind  EventKind
	Value string
}
