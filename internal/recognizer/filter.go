package recognizer

import (
	"fmt"

	"github.com/aretw0/gestures/pkg/domain"
)

// NodeFilter absorbs single noisy samples before a direction reaches the
// chain. It keeps the most recent samples that differ from the chain's last
// token, up to minNodes of them, and admits a direction once that window is
// full and unanimous.
type NodeFilter struct {
	minNodes int
	window   []domain.Direction
}

// NewNodeFilter returns a filter requiring minNodes agreeing samples.
// It panics if minNodes is below 1; configs are validated before this point.
func NewNodeFilter(minNodes int) *NodeFilter {
	if minNodes < 1 {
		panic(fmt.Sprintf("recognizer: min nodes must be at least 1, got %d", minNodes))
	}
	return &NodeFilter{minNodes: minNodes, window: make([]domain.Direction, 0, minNodes)}
}

// Offer feeds one classified sample. last is the chain's current last token.
// It reports true when d should be committed; the window is then empty again.
// A sample repeating last is skipped and leaves the window as it was.
func (f *NodeFilter) Offer(d, last domain.Direction) bool {
	if !d.Valid() {
		return false
	}
	if d == last {
		return false
	}
	if len(f.window) == f.minNodes {
		copy(f.window, f.window[1:])
		f.window = f.window[:f.minNodes-1]
	}
	f.window = append(f.window, d)
	if len(f.window) < f.minNodes {
		return false
	}
	for _, s := range f.window {
		if s != d {
			return false
		}
	}
	f.Reset()
	return true
}

// Reset empties the window.
func (f *NodeFilter) Reset() {
	f.window = f.window[:0]
}

// Pending returns the samples currently held.
func (f *NodeFilter) Pending() []domain.Direction {
	return append([]domain.Direction(nil), f.window...)
}
