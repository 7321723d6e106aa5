/*
Package observability turns recognizer lifecycle hooks into Prometheus metrics.

Metrics.Hooks returns a domain.LifecycleHooks value that can be combined with
other hooks through domain.CombineHooks and passed to the engine.
*/
package observability
