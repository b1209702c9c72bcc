// Package diag is the optional resource-tracing hook of the rx runtime.
//
// Tracing is off by default and costs one atomic load per subscription while
// off. When enabled, every subscription made through the producer protocol is
// counted while it is live, logged at debug level with a UUIDv7 subscription
// id, and (if a Prometheus registerer is supplied) exported as metrics:
//
//	rx_live_subscriptions{operator}  gauge
//	rx_subscriptions_total{operator} counter
//
// Tests use LiveSubscriptions to assert that a pipeline released everything
// it allocated.
package diag
