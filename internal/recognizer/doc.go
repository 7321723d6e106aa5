// Package recognizer implements the gesture state machine of one input surface.
//
// An Engine consumes normalized pointer events, classifies motion into compass
// directions, accumulates them into a chain and reports progress to a
// ports.Observer. It is single-threaded: event handlers and timer callbacks
// must never overlap. pkg/session provides that serialization for hosts that
// deliver events from several goroutines.
package recognizer
