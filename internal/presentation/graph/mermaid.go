package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/runner"
)

// Overlay contains replay state to highlight on the graph.
type Overlay struct {
	Visited []domain.Mode
	Current domain.Mode
}

// NewOverlay builds the overlay of a finished replay: every mode a
// transition touched, and the mode the surface ended in.
func NewOverlay(s *runner.Summary) *Overlay {
	o := &Overlay{Current: s.FinalMode}
	for _, t := range s.Transitions {
		o.Visited = append(o.Visited, t.From, t.To)
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of recognition modes from the
// transitions seen during a replay.
// Shapes:
// - Idle: ((Circle))
// - Rocker, Wheel: [[Subroutine]]
// - Keypress: [/Parallelogram/]
// - Gesture: [Rectangle]
// Edges that abandon a gesture (timeout, escape, cancel) are dotted.
func GenerateMermaid(transitions []runner.Transition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[domain.Mode]bool)
	declare := func(m domain.Mode) {
		if declared[m] {
			return
		}
		declared[m] = true
		opener, closer := shape(m)
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(m.String()), opener, m, closer)
	}

	// Idle is where every surface starts.
	declare(domain.ModeIdle)
	for _, t := range transitions {
		declare(t.From)
		declare(t.To)
	}

	for _, t := range transitions {
		label := t.Cause
		if t.Count > 1 {
			label = fmt.Sprintf("%s x%d", t.Cause, t.Count)
		}
		label = strings.ReplaceAll(label, "\"", "'")

		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if abandons(t.Cause) {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(t.From.String()), arrow, sanitizeMermaidID(t.To.String()))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[domain.Mode]bool)
		for _, m := range overlay.Visited {
			if visited[m] || !declared[m] {
				continue
			}
			visited[m] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", sanitizeMermaidID(m.String()))
		}
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current.String()))
	}

	return sb.String()
}

func shape(m domain.Mode) (string, string) {
	switch m {
	case domain.ModeIdle:
		return "((", "))"
	case domain.ModeRocker, domain.ModeWheel:
		return "[[", "]]"
	case domain.ModeKeypress:
		return "[/", "/]"
	default:
		return "[", "]"
	}
}

func abandons(cause string) bool {
	switch cause {
	case domain.CauseTimeout, domain.CauseEscape, domain.CauseCancel, domain.CauseDetach:
		return true
	}
	return false
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "(", "_")
	s = strings.ReplaceAll(s, ")", "_")
	return s
}
