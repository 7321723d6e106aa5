/*
Package domain contains the core domain models of the gesture recognizer.

It defines the values that flow between the host, the recognition engine and
its observers: pointer samples, direction tokens, direction chains, modes,
button chords and the effect descriptors returned to the host. This package is
kept pure and free of I/O, timers and persistence.

# Key Entities

  - Point: an integer screen coordinate of a pointer sample.
  - Direction: one compass token (4-way, or 8-way with diagonals).
  - Chain: the ordered direction tokens of one gesture, no two adjacent equal.
  - Mode: the active recognition mode (Idle, FreeGesture, Rocker, Wheel, Keypress).
  - Config: the per-surface recognition settings.
  - Effect: what the host should do with the platform event it just delivered.
*/
package domain
