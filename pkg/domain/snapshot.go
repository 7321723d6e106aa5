package domain

// Snapshot is a read-only view of a session, for introspection.
type Snapshot struct {
	Surface        string      `json:"surface"`
	Mode           Mode        `json:"mode"`
	Buttons        ButtonState `json:"buttons"`
	Chain          Chain       `json:"chain"`
	Last           Point       `json:"last"`
	Pointer        Point       `json:"pointer"`
	Anchor         Point       `json:"anchor"`
	Swiping        bool        `json:"swiping"`
	GesturePending bool        `json:"gesture_timer_pending"`
	SwipePending   bool        `json:"swipe_timer_pending"`
}
