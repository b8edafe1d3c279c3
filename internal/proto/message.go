package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeNewMessage = "new_message"
	InboundTypeNewItem    = "new_item"
	InboundTypeNewTask    = "new_task"
	InboundTypeNewImage   = "new_image"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventMessageUpdate  = "message_update"
	EventShoppingUpdate = "shopping_update"
	EventTaskUpdate     = "task_update"
	EventImageUpdate    = "image_update"
)

// The inbound payloads use pointers so a missing field can be told apart from
// an empty string. Empty strings are valid entries.

// NewMessageData is a chat message from the client.
type NewMessageData struct {
	Message *string `json:"message"`
}

// NewItemData is a shopping list item from the client.
type NewItemData struct {
	Item *string `json:"item"`
}

// NewTaskData is a task from the client.
type NewTaskData struct {
	Task *string `json:"task"`
}

// NewImageData announces an image filename already in the upload directory.
type NewImageData struct {
	Filename *string `json:"filename"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessageUpdate is broadcast after a chat message is appended.
type MessageUpdate struct {
	Message string `json:"message"`
}

// ShoppingUpdate is broadcast after a shopping item is appended.
type ShoppingUpdate struct {
	Item string `json:"item"`
}

// TaskUpdate is broadcast after a task is appended.
type TaskUpdate struct {
	Task string `json:"task"`
}

// ImageUpdate is broadcast after an image filename is appended.
type ImageUpdate struct {
	Filename string `json:"filename"`
}

// Snapshot is the full dashboard state served by the snapshot API.
type Snapshot struct {
	Messages     []string `json:"messages"`
	ShoppingList []string `json:"shopping_list"`
	Tasks        []string `json:"tasks"`
	Images       []string `json:"images"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// NewInbound marshals data into an inbound envelope of the given type.
func NewInbound(typ string, data any) (Inbound, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Inbound{}, err
	}
	return Inbound{Type: typ, Data: raw}, nil
}

// FieldFor returns the payload field name carried by an inbound type and
// its matching broadcast event.
func FieldFor(inboundType string) (field, event string, ok bool) {
	switch inboundType {
	case InboundTypeNewMessage:
		return "message", EventMessageUpdate, true
	case InboundTypeNewItem:
		return "item", EventShoppingUpdate, true
	case InboundTypeNewTask:
		return "task", EventTaskUpdate, true
	case InboundTypeNewImage:
		return "filename", EventImageUpdate, true
	default:
		return "", "", false
	}
}
