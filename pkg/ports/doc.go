/*
Package ports defines the driven ports (interfaces) of the gesture recognizer.

These interfaces decouple the recognition core from the host application and
from infrastructure, so the same engine runs inside a desktop host, behind the
HTTP adapter, or in a deterministic trace replay.

# Key Interfaces

  - Observer: receives incremental chains, completed gestures and extra gestures.
  - Gate: lets the host veto starting a gesture (form fields, scrollbars).
  - Scheduler: one-shot timers and the current time (real or virtual).
  - Journal: optional record of recognized gestures per surface.
*/
package ports
