package messaging

import (
	"context"
	"fmt"
	"sync"
)

// Router is an in-memory Bus. Contexts register a Handler under their
// target name; senders address them by that name.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Handle registers h as the receiver for target, replacing any previous
// registration.
func (r *Router) Handle(target string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[target] = h
}

// Remove unregisters the receiver for target. Removing an absent target is
// a no-op.
func (r *Router) Remove(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, target)
}

// Present reports whether a receiver is registered for target.
func (r *Router) Present(target string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[target]
	return ok
}

// Request sends msg to its target and waits for the reply.
func (r *Router) Request(ctx context.Context, msg Message) (Message, error) {
	h, ok := r.lookup(msg.Target)
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrNoReceiver, msg.Target)
	}
	return h(ctx, msg)
}

// Post sends msg to its target and discards any reply.
func (r *Router) Post(ctx context.Context, msg Message) error {
	h, ok := r.lookup(msg.Target)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoReceiver, msg.Target)
	}
	_, err := h(ctx, msg)
	return err
}

func (r *Router) lookup(target string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[target]
	return h, ok
}
