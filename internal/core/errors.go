package core

import "errors"

// Error codes sent to clients in protocol error frames.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)

var (
	// ErrHubStopped is returned once the hub run loop has exited.
	ErrHubStopped = errors.New("hub stopped")
	// ErrUnknownCommand is returned for a command kind the hub cannot map to a list.
	ErrUnknownCommand = errors.New("unknown command")
)
