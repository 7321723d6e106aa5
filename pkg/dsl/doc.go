/*
Package dsl provides a Go DSL for programmatically recording input traces.

It builds the same runner.Trace a .jsonl or .yaml file holds, using a fluent
builder that tracks the pointer position and the virtual time cursor for you.
This is particularly useful for unit tests, examples and generating traces
from other tools.

Example usage:

	package main

	import (
		"context"

		"github.com/aretw0/gestures/pkg/domain"
		"github.com/aretw0/gestures/pkg/dsl"
		"github.com/aretw0/gestures/pkg/runner"
	)

	func main() {
		trace, err := dsl.New("back").
			Set("min_nodes", 1).
			Press(domain.ButtonRight, 100, 100).
			Stroke(domain.Left, 3).
			Release(domain.ButtonRight).
			Build()
		if err != nil {
			panic(err)
		}

		// Prints "direction L" then "gesture L".
		r := runner.NewRunner(runner.WithHandler(runner.NewTextHandler(nil)))
		_, _ = r.Run(context.Background(), trace)
	}
*/
package dsl
