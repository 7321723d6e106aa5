package dsl

import "github.com/aretw0/gestures/pkg/domain"

// At moves the time cursor to an absolute offset in milliseconds.
// Offsets never go backwards; Build rejects a trace where they do.
func (b *Builder) At(ms int64) *Builder {
	b.now = ms
	return b
}

// Wait advances the time cursor.
func (b *Builder) Wait(ms int64) *Builder {
	b.now += ms
	return b
}

// Hold sets the modifiers carried by the following button and move events.
// Hold(domain.ModNone) releases them.
func (b *Builder) Hold(mods domain.Modifiers) *Builder {
	b.modifiers = mods
	return b
}

// Press moves the pointer to (x, y) and presses a button there.
func (b *Builder) Press(button domain.Button, x, y int) *Builder {
	b.x, b.y = x, y
	return b.emit(domain.InputEvent{Kind: domain.KindButtonDown, Button: button, X: x, Y: y, Modifiers: b.modifiers})
}

// PressOn presses a button at the current position over a target, e.g.
// domain.TargetPlugin.
func (b *Builder) PressOn(button domain.Button, target domain.Target) *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindButtonDown, Button: button, X: b.x, Y: b.y, Modifiers: b.modifiers, Target: target})
}

// Release releases a button at the current position.
func (b *Builder) Release(button domain.Button) *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindButtonUp, Button: button, X: b.x, Y: b.y, Modifiers: b.modifiers})
}

// MoveTo records one motion sample at (x, y).
func (b *Builder) MoveTo(x, y int) *Builder {
	b.x, b.y = x, y
	return b.emit(domain.InputEvent{Kind: domain.KindMove, X: x, Y: y, Modifiers: b.modifiers})
}

// MoveBy records one motion sample relative to the current position.
// Screen coordinates: positive dy moves down.
func (b *Builder) MoveBy(dx, dy int) *Builder {
	return b.MoveTo(b.x+dx, b.y+dy)
}

// Stroke records samples motion samples heading in direction d, spaced by
// the Pace settings. The time cursor advances before each sample.
func (b *Builder) Stroke(d domain.Direction, samples int) *Builder {
	dx, dy := screenDelta(d)
	for i := 0; i < samples; i++ {
		b.Wait(b.interval)
		b.MoveBy(dx*b.step, dy*b.step)
	}
	return b
}

// Scroll records one wheel tick: negative delta scrolls up, positive down.
func (b *Builder) Scroll(delta int) *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindScroll, Delta: delta, X: b.x, Y: b.y})
}

// Swipe records a platform swipe in one of the four axis directions.
func (b *Builder) Swipe(d domain.Direction) *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindSwipe, Direction: d, X: b.x, Y: b.y})
}

// ContextMenu records the platform's context-menu request.
func (b *Builder) ContextMenu(button domain.Button) *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindContextMenu, Button: button, X: b.x, Y: b.y})
}

// Click records a click event.
func (b *Builder) Click(button domain.Button) *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindClick, Button: button, X: b.x, Y: b.y})
}

// DragStart records the start of a native drag.
func (b *Builder) DragStart() *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindDragStart, X: b.x, Y: b.y})
}

// Cancel records a host cancellation, e.g. a popup opening mid-gesture.
func (b *Builder) Cancel() *Builder {
	return b.emit(domain.InputEvent{Kind: domain.KindCancel})
}

func screenDelta(d domain.Direction) (int, int) {
	switch d {
	case domain.Left:
		return -1, 0
	case domain.Right:
		return 1, 0
	case domain.Up:
		return 0, -1
	case domain.Down:
		return 0, 1
	case domain.UpRight:
		return 1, -1
	case domain.UpLeft:
		return -1, -1
	case domain.DownRight:
		return 1, 1
	case domain.DownLeft:
		return -1, 1
	}
	return 0, 0
}
