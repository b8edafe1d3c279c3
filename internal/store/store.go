package store

import (
	"context"
	"errors"
)

// List names one of the four shared append-only lists.
type List string

const (
	ListMessages List = "messages"
	ListShopping List = "shopping"
	ListTasks    List = "tasks"
	ListImages   List = "images"
)

// Lists enumerates every list in display order.
var Lists = []List{ListMessages, ListShopping, ListTasks, ListImages}

// Valid reports whether l is one of the known lists.
func (l List) Valid() bool {
	switch l {
	case ListMessages, ListShopping, ListTasks, ListImages:
		return true
	default:
		return false
	}
}

// ErrUnknownList is returned when a list name is not one of Lists.
var ErrUnknownList = errors.New("unknown list")

// Snapshot is the full ordered content of every list, oldest entry first.
type Snapshot struct {
	Messages      []string
	ShoppingItems []string
	Tasks         []string
	Images        []string
}

// Get returns the entries of list l held by the snapshot.
func (s Snapshot) Get(l List) []string {
	switch l {
	case ListMessages:
		return s.Messages
	case ListShopping:
		return s.ShoppingItems
	case ListTasks:
		return s.Tasks
	case ListImages:
		return s.Images
	default:
		return nil
	}
}

// Set replaces the entries of list l held by the snapshot.
func (s *Snapshot) Set(l List, entries []string) {
	switch l {
	case ListMessages:
		s.Messages = entries
	case ListShopping:
		s.ShoppingItems = entries
	case ListTasks:
		s.Tasks = entries
	case ListImages:
		s.Images = entries
	}
}

// Store holds the shared lists for the lifetime of the process.
// Entries are never edited or removed; insertion order is the only order.
type Store interface {
	// Append adds value to the end of list l.
	Append(ctx context.Context, l List, value string) error

	// List returns a copy of every entry of list l, oldest first.
	List(ctx context.Context, l List) ([]string, error)

	// Snapshot returns a copy of all four lists.
	Snapshot(ctx context.Context) (Snapshot, error)

	// Close releases resources held by the store.
	Close() error
}
