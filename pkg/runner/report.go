package runner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/gestures/pkg/domain"
)

// Summary counts what a replay produced.
type Summary struct {
	Name       string         `json:"name"`
	Events     int            `json:"events"`
	Consumed   int            `json:"consumed"`
	Directions int            `json:"directions"`
	Gestures   []string       `json:"gestures"`
	Extras     map[string]int `json:"extras"`
	Duration   time.Duration  `json:"duration"`

	// Transitions lists each distinct mode change in first-seen order.
	Transitions []Transition `json:"transitions,omitempty"`
	FinalMode   domain.Mode  `json:"final_mode"`

	seen map[Transition]int
}

// Transition counts one kind of mode change seen during a replay.
type Transition struct {
	From  domain.Mode `json:"from"`
	To    domain.Mode `json:"to"`
	Cause string      `json:"cause"`
	Count int         `json:"count"`
}

func newSummary(name string) *Summary {
	return &Summary{Name: name, Extras: map[string]int{}, seen: map[Transition]int{}}
}

func (s *Summary) transition(from, to domain.Mode, cause string) {
	key := Transition{From: from, To: to, Cause: cause}
	i, ok := s.seen[key]
	if !ok {
		i = len(s.Transitions)
		s.seen[key] = i
		s.Transitions = append(s.Transitions, key)
	}
	s.Transitions[i].Count++
}

func (s *Summary) add(n Notification) {
	switch n.Kind {
	case KindDirection:
		s.Directions++
	case KindGesture:
		s.Gestures = append(s.Gestures, n.Value)
	case KindExtra:
		s.Extras[n.Value]++
	}
}

// Markdown renders the summary as a markdown report.
func (s *Summary) Markdown() string {
	var b strings.Builder
	title := s.Name
	if title == "" {
		title = "trace"
	}
	fmt.Fprintf(&b, "# Replay: %s\n\n", title)
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Events | %d |\n", s.Events)
	fmt.Fprintf(&b, "| Consumed | %d |\n", s.Consumed)
	fmt.Fprintf(&b, "| Directions | %d |\n", s.Directions)
	fmt.Fprintf(&b, "| Gestures | %d |\n", len(s.Gestures))
	fmt.Fprintf(&b, "| Virtual time | %s |\n", s.Duration)

	b.WriteString("\n## Gestures\n\n")
	if len(s.Gestures) == 0 {
		b.WriteString("_none_\n")
	}
	for i, g := range s.Gestures {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, g)
	}

	b.WriteString("\n## Extra gestures\n\n")
	if len(s.Extras) == 0 {
		b.WriteString("_none_\n")
		return b.String()
	}
	reasons := make([]string, 0, len(s.Extras))
	for reason := range s.Extras {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	b.WriteString("| Reason | Count |\n|---|---|\n")
	for _, reason := range reasons {
		fmt.Fprintf(&b, "| %s | %d |\n", reason, s.Extras[reason])
	}
	return b.String()
}
