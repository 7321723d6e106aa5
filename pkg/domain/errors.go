package domain

import "errors"

// ErrInvalidConfig is returned when a configuration value is outside its documented range.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrSurfaceNotFound is returned when an event targets a surface that is not attached.
var ErrSurfaceNotFound = errors.New("surface not found")

// ErrSurfaceExists is returned when attaching a surface ID that is already attached.
var ErrSurfaceExists = errors.New("surface already attached")

// ErrUnknownEvent is returned when a serialized input event cannot be dispatched.
var ErrUnknownEvent = errors.New("unknown input event")
