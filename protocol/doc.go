/*
Package protocol defines the wire format shared by the gameservices client
and its counterpart on the host side.

All messages are JSON text. Outbound requests are addressed by the waPC
function name (the command) and carry a Request envelope pairing a request id
with an opaque payload string. Inbound messages are Envelope values with the
fixed type tag "RESPONSE", correlating a request id to a success or failure
outcome. Command payloads ride inside envelopes as JSON-encoded strings, so
embedded control characters survive the transport round trip through standard
JSON string escaping.

Each command's payload schema is a typed struct validated at decode time;
decode failures surface as ErrMalformedEnvelope or ErrMalformedPayload and
are recoverable by the caller.
*/
package protocol
