package messaging

import (
	"context"
	"errors"
)

// ErrNoReceiver indicates the target context is not present. Senders of
// notifications treat this as a non-fatal outcome.
var ErrNoReceiver = errors.New("messaging: no receiver for target")

// Handler processes a message for a registered context and optionally
// returns a reply.
type Handler func(ctx context.Context, msg Message) (Message, error)

// Bus is the asynchronous channel abstraction between execution contexts.
type Bus interface {
	// Request sends msg to its target and waits for the reply.
	Request(ctx context.Context, msg Message) (Message, error)

	// Post sends msg to its target and discards any reply. Returns
	// ErrNoReceiver when the target is absent.
	Post(ctx context.Context, msg Message) error
}
