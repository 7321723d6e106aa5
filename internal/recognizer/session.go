package recognizer

import "github.com/aretw0/gestures/pkg/domain"

// Session is the mutable recognition state of one surface.
type Session struct {
	Mode    domain.Mode
	Buttons domain.ButtonState
	// Last is the last point the classifier accepted.
	Last    domain.Point
	// Pointer is the most recent pointer position of any event.
	Pointer domain.Point
	Anchor  domain.Point
	Chain   domain.Chain

	filter *NodeFilter

	// swiping marks a continuous platform swipe sequence in progress.
	swiping bool

	// keyMods are the modifiers seen by the last keypress extra gesture.
	keyMods domain.Modifiers

	// suppressMenu holds back the next context menu after a gesture fired.
	suppressMenu bool
	// menuPending is a context menu held back during a right-button press
	// that must be shown on release if no gesture happened.
	menuPending bool
}

func newSession(minNodes int) *Session {
	return &Session{filter: NewNodeFilter(minNodes)}
}

// commit feeds d through the filter and appends it when admitted.
func (s *Session) commit(d domain.Direction) bool {
	if !s.filter.Offer(d, s.Chain.Last()) {
		return false
	}
	next, ok := s.Chain.Append(d)
	if !ok {
		return false
	}
	s.Chain = next
	return true
}

func (s *Session) clearChain() {
	s.Chain = ""
	s.filter.Reset()
}

func (s *Session) snapshot() domain.Snapshot {
	return domain.Snapshot{
		Mode:    s.Mode,
		Buttons: s.Buttons,
		Chain:   s.Chain,
		Last:    s.Last,
		Pointer: s.Pointer,
		Anchor:  s.Anchor,
		Swiping: s.swiping,
	}
}
