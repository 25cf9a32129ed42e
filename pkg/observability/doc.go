/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured log records.

Both Metrics.Hooks and LogHooks return domain.LifecycleHooks; combine them with
LifecycleHooks.Merge before handing them to the engine.
*/
package observability
