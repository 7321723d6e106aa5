/*
Package runner replays recorded input traces through the gestures engine.

A trace is an ordered list of input events, each stamped with its offset
from the start of the recording. The runner drives a virtual clock so timers
fire exactly where they would have fired live, and reports every callback and
every consumed event to a pluggable Handler.

# Key Components

  - Trace: The recorded events, plus optional preference overrides.
  - Runner: Owns the virtual clock and a single-surface Engine.
  - Handler: Decouples how notifications are presented (text, JSON lines, memory).
  - Summary: Counts gathered during a replay, renderable as a markdown report.

# Usage

	trace, err := runner.LoadTrace("swipe.yaml")
	if err != nil {
		log.Fatal(err)
	}

	r := runner.NewRunner(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
	)
	summary, err := r.Run(ctx, trace)
*/
package runner
