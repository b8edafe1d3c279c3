package core

import "github.com/vovakirdan/homeboard/internal/store"

// CommandKind describes which list a client wants to add to.
type CommandKind int

const (
	// CommandNewMessage appends a chat message.
	CommandNewMessage CommandKind = iota
	// CommandNewItem appends a shopping list item.
	CommandNewItem
	// CommandNewTask appends a task.
	CommandNewTask
	// CommandNewImage appends an uploaded image filename.
	CommandNewImage
)

// Command represents an append requested by a client or by the upload endpoint.
type Command struct {
	Kind  CommandKind
	Value string
}

// List returns the store list the command appends to.
func (k CommandKind) List() (store.List, bool) {
	switch k {
	case CommandNewMessage:
		return store.ListMessages, true
	case CommandNewItem:
		return store.ListShopping, true
	case CommandNewTask:
		return store.ListTasks, true
	case CommandNewImage:
		return store.ListImages, true
	default:
		return "", false
	}
}

// Event returns the update event kind published after the append.
func (k CommandKind) Event() (EventKind, bool) {
	switch k {
	case CommandNewMessage:
		return EventMessageUpdate, true
	case CommandNewItem:
		return EventShoppingUpdate, true
	case CommandNewTask:
		return EventTaskUpdate, true
	case CommandNewImage:
		return EventImageUpdate, true
	default:
		return 0, false
	}
}
