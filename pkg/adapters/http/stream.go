package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // surface -> set of channels
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a channel for the notifications of a surface. The
// returned function unregisters and closes it.
func (sm *StreamManager) Subscribe(surface string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	if _, ok := sm.subscribers[surface]; !ok {
		sm.subscribers[surface] = make(map[chan<- string]struct{})
	}
	sm.subscribers[surface][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[surface]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, surface)
			}
		}
	}
}

// Subscribers returns the number of open streams of a surface.
func (sm *StreamManager) Subscribers(surface string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[surface])
}

// Broadcast sends msg to every stream of a surface without blocking.
func (sm *StreamManager) Broadcast(surface string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[surface] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "surface", surface)
		}
	}
}

// SubscribeEvents handles the GET /surfaces/{id}/stream request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Engine.Snapshot(id); err != nil {
		s.writeError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.logger.Debug("SSE: client subscribed", "surface", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: client disconnected", "surface", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// outbox queues notifications of one surface until they are drained.
type outbox struct {
	mu      sync.Mutex
	items   []Notification
	max     int
	dropped int

	// capturing diverts pushes to captured while an event is dispatched.
	capturing bool
	captured  []Notification
}

func newOutbox(limit int) *outbox {
	return &outbox{max: limit}
}

func (o *outbox) push(n Notification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.capturing {
		o.captured = append(o.captured, n)
		return
	}
	if len(o.items) >= o.max {
		o.items = o.items[1:]
		o.dropped++
	}
	o.items = append(o.items, n)
}

func (o *outbox) drain() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.items
	if out == nil {
		out = []Notification{}
	}
	o.items = nil
	return out
}

func (o *outbox) capture() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.capturing = true
	o.captured = nil
}

// release ends a capture and returns what it collected.
func (o *outbox) release() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.captured
	o.capturing = false
	o.captured = nil
	return out
}

// surfaceObserver queues and streams the callbacks of one surface.
type surfaceObserver struct {
	server  *Server
	surface string
	box     *outbox
}

func (o *surfaceObserver) OnDirectionChanged(chain domain.Chain) {
	o.notify("direction", chain.String())
}

func (o *surfaceObserver) OnMouseGesture(chain domain.Chain) {
	o.notify("gesture", chain.String())
}

func (o *surfaceObserver) OnExtraGesture(reason string) {
	o.notify("extra", reason)
}

func (o *surfaceObserver) notify(kind, value string) {
	n := Notification{
		Surface: o.surface,
		Kind:    kind,
		Value:   value,
		At:      o.server.Engine.Scheduler().Now(),
	}
	o.box.push(n)
	if data, err := json.Marshal(n); err == nil {
		o.server.Streams.Broadcast(o.surface, string(data))
	}
}
