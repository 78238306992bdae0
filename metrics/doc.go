/*
Package metrics provides a client for emitting custom counters through the
explay host runtime.

The package exposes a constructor for Counter metric handles, backed by JSON
payloads sent over waPC host calls. The gameservices client uses counters to
account for dispatched, failed, and timed-out requests.

Metric emission methods intentionally follow Prometheus-style ergonomics:
Inc is best-effort and does not return errors. Marshal or host-call failures
are treated as non-fatal and are swallowed to avoid impacting caller control
flow.
*/
package metrics
