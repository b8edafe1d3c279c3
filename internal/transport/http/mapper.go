package http

import (
	"encoding/json"

	"github.com/vovakirdan/homeboard/internal/core"
	"github.com/vovakirdan/homeboard/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeNewMessage:
		var data proto.NewMessageData
		if err := decodeData(inbound.Data, &data); err != nil {
			return nil, badRequest("message must be a string")
		}
		if data.Message == nil {
			return nil, badRequest("message is required")
		}
		return &core.Command{Kind: core.CommandNewMessage, Value: *data.Message}, nil
	case proto.InboundTypeNewItem:
		var data proto.NewItemData
		if err := decodeData(inbound.Data, &data); err != nil {
			return nil, badRequest("item must be a string")
		}
		if data.Item == nil {
			return nil, badRequest("item is required")
		}
		return &core.Command{Kind: core.CommandNewItem, Value: *data.Item}, nil
	case proto.InboundTypeNewTask:
		var data proto.NewTaskData
		if err := decodeData(inbound.Data, &data); err != nil {
			return nil, badRequest("task must be a string")
		}
		if data.Task == nil {
			return nil, badRequest("task is required")
		}
		return &core.Command{Kind: core.CommandNewTask, Value: *data.Task}, nil
	case proto.InboundTypeNewImage:
		var data proto.NewImageData
		if err := decodeData(inbound.Data, &data); err != nil {
			return nil, badRequest("filename must be a string")
		}
		if data.Filename == nil {
			return nil, badRequest("filename is required")
		}
		return &core.Command{Kind: core.CommandNewImage, Value: *data.Filename}, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}
	}
}

// decodeData treats an absent data object like an empty one so the caller
// reports the missing field.
func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func badRequest(msg string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: msg}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessageUpdate:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMessageUpdate,
			Data:  proto.MessageUpdate{Message: event.Value},
		}
	case core.EventShoppingUpdate:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventShoppingUpdate,
			Data:  proto.ShoppingUpdate{Item: event.Value},
		}
	case core.EventTaskUpdate:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventTaskUpdate,
			Data:  proto.TaskUpdate{Task: event.Value},
		}
	case core.EventImageUpdate:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventImageUpdate,
			Data:  proto.ImageUpdate{Filename: event.Value},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
