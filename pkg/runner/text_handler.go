package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TextHandler prints one line per notification, coloured when writing to a
// terminal.
type TextHandler struct {
	Writer io.Writer

	color  bool
	output *termenv.Output
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithColor forces coloured output on or off.
func WithColor(enabled bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.color = enabled
	}
}

// NewTextHandler creates a text handler writing to w (os.Stdout when nil).
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		color:  isTerminal(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	profile := termenv.Ascii
	if h.color {
		profile = termenv.ANSI256
	}
	h.output = termenv.NewOutput(w, termenv.WithProfile(profile))
	return h
}

var kindColors = map[Kind]string{
	KindDirection: "#818cf8",
	KindGesture:   "#34d399",
	KindExtra:     "#f472b6",
	KindEffect:    "#9ca3af",
}

func (h *TextHandler) Handle(_ context.Context, n Notification) error {
	label := h.output.String(fmt.Sprintf("%-9s", n.Kind)).Foreground(h.output.Color(kindColors[n.Kind]))
	if n.Kind == KindGesture {
		label = label.Bold()
	}
	value := n.Value
	if n.Event != nil {
		value = fmt.Sprintf("%s (%s)", value, n.Event.Kind)
	}
	_, err := fmt.Fprintf(h.Writer, "%7dms  %s %s\n", n.At, label, value)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
