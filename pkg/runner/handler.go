package runner

import (
	"context"
	"strings"
	"sync"

	"github.com/aretw0/gestures/pkg/domain"
)

// Kind classifies a Notification.
type Kind string

const (
	KindDirection Kind = "direction"
	KindGesture   Kind = "gesture"
	KindExtra     Kind = "extra"
	KindEffect    Kind = "effect"
)

// Notification is one observable outcome of a replay: an observer callback,
// or the effect returned for an event the engine consumed.
type Notification struct {
	// At is the virtual time since the start of the trace, in milliseconds.
	At    int64  `json:"at"`
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`

	Event  *domain.InputEvent `json:"event,omitempty"`
	Effect *domain.Effect     `json:"effect,omitempty"`
}

// Handler defines the strategy for presenting notifications.
// This allows switching between Text (CLI) and JSON (structured) output.
type Handler interface {
	Handle(ctx context.Context, n Notification) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, n Notification) error

func (f HandlerFunc) Handle(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Discard drops every notification.
var Discard Handler = HandlerFunc(func(context.Context, Notification) error { return nil })

// Collector keeps notifications in memory.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func (c *Collector) Handle(_ context.Context, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
	return nil
}

// Notifications returns a copy of everything collected so far.
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Callbacks returns the collected observer callbacks as "kind:value" strings,
// skipping effects.
func (c *Collector) Callbacks() []string {
	var out []string
	for _, n := range c.Notifications() {
		if n.Kind == KindEffect {
			continue
		}
		out = append(out, string(n.Kind)+":"+n.Value)
	}
	return out
}

// MultiHandler fans notifications out to several handlers, stopping at the
// first error.
func MultiHandler(handlers ...Handler) Handler {
	return HandlerFunc(func(ctx context.Context, n Notification) error {
		for _, h := range handlers {
			if err := h.Handle(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func effectLabel(eff domain.Effect) string {
	var parts []string
	if eff.Consumed {
		parts = append(parts, "consumed")
	}
	if eff.ShowContextMenu {
		parts = append(parts, "show-menu")
	}
	return strings.Join(parts, "+")
}
