// Package dispatch routes decoded protocol messages to registered handlers.
//
// It is the application-layer counterpart of the closed unions in contracts:
// a server process dispatches contracts.ClientMessage values, a client
// process dispatches contracts.ServerMessage values. The two directions use
// separate Dispatcher instances, so a tag belonging to one union can never be
// routed by the other.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Message is the dispatchable surface shared by both protocol unions.
type Message interface {
	MessageType() string
}

// Handler processes one decoded message.
type Handler[M Message] interface {
	Handle(ctx context.Context, msg M) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc[M Message] func(ctx context.Context, msg M) error

// Handle implements Handler.
func (f HandlerFunc[M]) Handle(ctx context.Context, msg M) error {
	return f(ctx, msg)
}

// Middleware processes messages before they reach handlers.
type Middleware[M Message] func(ctx context.Context, msg M, next Handler[M]) error

// Dispatcher routes messages to handlers by variant tag.
type Dispatcher[M Message] struct {
	handlers   map[string][]Handler[M]
	mu         sync.RWMutex
	logger     *slog.Logger
	middleware []Middleware[M]
}

// Option configures a Dispatcher.
type Option[M Message] func(*Dispatcher[M])

// WithLogger sets the logger.
func WithLogger[M Message](logger *slog.Logger) Option[M] {
	return func(d *Dispatcher[M]) {
		d.logger = logger
	}
}

// WithMiddleware adds middleware to the dispatcher.
func WithMiddleware[M Message](middleware ...Middleware[M]) Option[M] {
	return func(d *Dispatcher[M]) {
		d.middleware = append(d.middleware, middleware...)
	}
}

// NewDispatcher creates a dispatcher for one protocol direction.
func NewDispatcher[M Message](options ...Option[M]) *Dispatcher[M] {
	d := &Dispatcher[M]{
		handlers: make(map[string][]Handler[M]),
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Register adds a handler for a variant tag. Multiple handlers may be
// registered for the same tag and run in registration order.
func (d *Dispatcher[M]) Register(tag string, handler Handler[M]) error {
	if tag == "" {
		return fmt.Errorf("dispatch: tag cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("dispatch: handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[tag] = append(d.handlers[tag], handler)

	d.logger.Debug("registered handler", "tag", tag, "count", len(d.handlers[tag]))
	return nil
}

// RegisterFunc adds a handler function for a variant tag.
func (d *Dispatcher[M]) RegisterFunc(tag string, fn HandlerFunc[M]) error {
	return d.Register(tag, fn)
}

// Dispatch routes msg to every handler registered for its tag. It returns an
// error when no handler is registered or when any handler fails.
func (d *Dispatcher[M]) Dispatch(ctx context.Context, msg M) error {
	tag := msg.MessageType()

	d.mu.RLock()
	handlers := make([]Handler[M], len(d.handlers[tag]))
	copy(handlers, d.handlers[tag])
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return fmt.Errorf("dispatch: no handler registered for %q", tag)
	}

	for _, h := range handlers {
		if err := d.invoke(ctx, msg, h); err != nil {
			d.logger.Error("handler failed", "tag", tag, "error", err)
			return fmt.Errorf("dispatch: handler for %q failed: %w", tag, err)
		}
	}
	return nil
}

// invoke runs the middleware chain and then the handler.
func (d *Dispatcher[M]) invoke(ctx context.Context, msg M, handler Handler[M]) error {
	next := handler
	for i := len(d.middleware) - 1; i >= 0; i-- {
		mw := d.middleware[i]
		inner := next
		next = HandlerFunc[M](func(ctx context.Context, msg M) error {
			return mw(ctx, msg, inner)
		})
	}
	return next.Handle(ctx, msg)
}

// Tags returns the tags that currently have at least one handler.
func (d *Dispatcher[M]) Tags() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tags := make([]string, 0, len(d.handlers))
	for tag := range d.handlers {
		tags = append(tags, tag)
	}
	return tags
}
