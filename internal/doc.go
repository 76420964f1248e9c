// Package internal holds the operations board internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, rendering, and routing
// - domain: inquiry reconciliation, funnel metrics, and booking pace
// - sheets, gigfeed: upstream data source clients
// - dashboard: report orchestration and caching
// - config, metrics, telemetry, roster, cache, dates: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
