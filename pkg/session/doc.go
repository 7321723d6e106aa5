/*
Package session keeps one live recognizer per attached input surface.

Hosts deliver pointer events and timer firings from several goroutines; the
Manager serializes everything that touches a surface behind that surface's
lock, so the single-threaded recognizer never sees overlapping handlers.
*/
package session
