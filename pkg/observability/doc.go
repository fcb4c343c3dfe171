/*
Package observability turns engine lifecycle events into logs and Prometheus metrics.

Both are exposed as domain.LifecycleHooks so they can be merged and passed to
attlookup.WithLifecycleHooks.
*/
package observability
