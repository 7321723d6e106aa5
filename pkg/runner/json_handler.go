package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
)

// JSONHandler writes notifications as JSON lines.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler writing to w (os.Stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Handle(_ context.Context, n Notification) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(n)
}
