package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTrace is returned when a trace cannot be parsed or its events are
// out of order.
var ErrInvalidTrace = errors.New("invalid trace")

// Trace is a recorded input session of one surface.
type Trace struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Config is a preference map applied over the runner configuration.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`

	// Drain is how long the clock keeps running after the last event, in
	// milliseconds. Zero uses the runner default.
	Drain int64 `json:"drain,omitempty" yaml:"drain,omitempty"`

	Events []domain.InputEvent `json:"events" yaml:"events"`
}

// DrainWindow returns Drain as a duration.
func (t *Trace) DrainWindow() time.Duration {
	return time.Duration(t.Drain) * time.Millisecond
}

// Length returns the offset of the last event.
func (t *Trace) Length() time.Duration {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Offset()
}

// Validate checks every event and that offsets never go backwards.
func (t *Trace) Validate() error {
	if len(t.Events) == 0 {
		return fmt.Errorf("%w: no events", ErrInvalidTrace)
	}
	if t.Drain < 0 {
		return fmt.Errorf("%w: negative drain %d", ErrInvalidTrace, t.Drain)
	}
	var prev int64
	for i, ev := range t.Events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("%w: event %d: %v", ErrInvalidTrace, i, err)
		}
		if ev.At < prev {
			return fmt.Errorf("%w: event %d at %dms is before %dms", ErrInvalidTrace, i, ev.At, prev)
		}
		prev = ev.At
	}
	return nil
}

// LoadTrace reads a trace file. The format follows the extension: .jsonl
// holds one event per line, .json an event array or a trace object, and
// anything else is read as YAML.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	ext := filepath.Ext(path)
	trace, err := ParseTrace(data, strings.TrimPrefix(strings.ToLower(ext), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if trace.Name == "" {
		trace.Name = strings.TrimSuffix(filepath.Base(path), ext)
	}
	return trace, nil
}

// ParseTrace decodes a trace in the given format ("jsonl", "json" or "yaml")
// and validates it.
func ParseTrace(data []byte, format string) (*Trace, error) {
	t := &Trace{}
	switch format {
	case "jsonl", "ndjson":
		events, err := parseLines(data)
		if err != nil {
			return nil, err
		}
		t.Events = events
	case "json":
		trimmed := bytes.TrimSpace(data)
		var err error
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &t.Events)
		} else {
			err = json.Unmarshal(trimmed, t)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
		}
	default:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
		}
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTrace)
		}
		var err error
		if doc.Content[0].Kind == yaml.SequenceNode {
			err = doc.Content[0].Decode(&t.Events)
		} else {
			err = doc.Content[0].Decode(t)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseLines(data []byte) ([]domain.InputEvent, error) {
	var events []domain.InputEvent
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var ev domain.InputEvent
		if err := json.Unmarshal(text, &ev); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidTrace, line, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}
	return events, nil
}
