/*
Package gestures recognizes directional pointer gestures and hands the
resulting tokens to a host application.

A host attaches one session per input surface (a window, a tab, a canvas) and
feeds it normalized events: button presses and releases, motion samples,
scroll ticks and platform swipes. The engine classifies motion into compass
directions, accumulates them into a chain such as "RDL", and reports progress
through a ports.Observer. It never decides what a gesture means; mapping "RDL"
to an action is the host's job.

# Modes

  - Free gesture: the trigger button is held and the pointer moves.
  - Rocker: a second button is pressed while another is held.
  - Wheel: the wheel scrolls while a gesture is held.
  - Keypress: Ctrl or Shift is held while drawing.
  - Swipe: platform swipe events, alone or chained by a quiet period.

# Effects

Every inbound handler returns a domain.Effect telling the host whether to
suppress the platform default behaviour (text selection, scrolling, the
context menu) instead of mutating the event itself.

# Usage

	eng, err := gestures.New(gestures.WithConfig(cfg))
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close(context.Background())

	err = eng.Attach("main-window", ports.ObserverFuncs{
		MouseGesture: func(chain domain.Chain) { fmt.Println("gesture", chain) },
		ExtraGesture: func(reason string) { fmt.Println("extra", reason) },
	})

	eff, err := eng.ButtonDown("main-window", domain.ButtonEvent{Button: domain.ButtonRight, Point: domain.Pt(10, 10)})

Timers run on a ports.Scheduler. Pass a clock.Manual through WithScheduler to
drive them deterministically in tests and trace replay.
*/
package gestures
