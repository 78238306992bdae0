/*
Package gameservices provides the client for the explay GameServices
capability: user identity checks and per-user key/value persistence, spoken
over an asynchronous, one-way message boundary.

The host cannot return values directly, so every operation is a correlated
request/response exchange. Dispatch allocates a strictly increasing request
id, parks a pending entry, fires the outbound host call, and hands back a
buffered result channel. The host answers later by invoking Deliver with a
response envelope; the matching entry is resolved and its timeout cancelled.
Exactly one of resolution or timeout completes a request, never both.

A request that sees no response within the configured timeout completes with
ErrRequestTimeout rather than hanging forever; failure envelopes complete
with ErrRequestFailed wrapping the host's message. Both kinds are checkable
with errors.Is.

Typed operations (IsSignedIn, UserDetails, Get, Set, List, Delete) wrap
Dispatch and block until their single result arrives, which the timeout
bounds. SaveProgress, LoadProgress, SaveHighScore, and HighScore are
convenience wrappers over Set/Get on reserved keys.

Construction follows the usual pattern: zero-value Config falls back to the
default namespace, the waPC host call, and host-side logging. Tests inject
the mockserver's HostCall to exercise the identical code path without a real
host.
*/
package gameservices
