package testutils

import (
	"fmt"
	"sync"

	"github.com/aretw0/gestures/pkg/domain"
)

// Callback kinds recorded by Recorder.
const (
	KindDirection = "direction"
	KindGesture   = "gesture"
	KindExtra     = "extra"
)

// Call is one observer callback.
type Call struct {
	Kind  string
	Value string
}

func (c Call) String() string {
	return fmt.Sprintf("%s:%s", c.Kind, c.Value)
}

// Direction, Gesture and Extra build expected calls.
func Direction(chain string) Call { return Call{Kind: KindDirection, Value: chain} }
func Gesture(chain string) Call   { return Call{Kind: KindGesture, Value: chain} }
func Extra(reason string) Call    { return Call{Kind: KindExtra, Value: reason} }

// Recorder is an observer that keeps every callback in order.
// It is safe for use from timer goroutines.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) OnDirectionChanged(chain domain.Chain) {
	r.add(Direction(chain.String()))
}

func (r *Recorder) OnMouseGesture(chain domain.Chain) {
	r.add(Gesture(chain.String()))
}

func (r *Recorder) OnExtraGesture(reason string) {
	r.add(Extra(reason))
}

func (r *Recorder) add(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns a copy of the recorded callbacks.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how many callbacks of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
