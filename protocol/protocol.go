package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Command identifies an operation the guest can request from the host.
type Command string

// The full command set understood by the counterpart.
const (
	CommandIsUserSignedIn Command = "IS_USER_SIGNED_IN"
	CommandGetUserDetails Command = "GET_USER_DETAILS"
	CommandGetUserData    Command = "GET_USER_DATA"
	CommandSetUserData    Command = "SET_USER_DATA"
	CommandListUserData   Command = "LIST_USER_DATA"
	CommandDeleteUserData Command = "DELETE_USER_DATA"
)

// ResponseType is the fixed type tag carried by every inbound envelope.
const ResponseType = "RESPONSE"

// EmptyPayload is the request payload for commands that take no arguments.
const EmptyPayload = "{}"

var (
	// ErrMalformedEnvelope indicates an inbound envelope that could not be
	// decoded. The envelope is discardable; no pending request is affected.
	ErrMalformedEnvelope = errors.New("response envelope is malformed")

	// ErrMalformedPayload indicates a command payload that could not be
	// decoded into its schema.
	ErrMalformedPayload = errors.New("payload is malformed")

	// ErrUnknownCommand indicates a command outside the supported set.
	ErrUnknownCommand = errors.New("unknown command type")
)

// Valid reports whether c is part of the supported command set.
func (c Command) Valid() bool {
	switch c {
	case CommandIsUserSignedIn, CommandGetUserDetails, CommandGetUserData,
		CommandSetUserData, CommandListUserData, CommandDeleteUserData:
		return true
	}
	return false
}

// Request is the outbound envelope pairing a request id with an opaque
// payload string. The command itself is addressed by the waPC function name.
type Request struct {
	RequestID int    `json:"requestId"`
	Payload   string `json:"payload"`
}

// Envelope is the inbound response message. One shape for all commands.
type Envelope struct {
	Type      string `json:"type"`
	RequestID int    `json:"requestId"`
	Success   bool   `json:"success"`
	Data      string `json:"data"`
	Error     string `json:"error"`
}

// EncodeRequest builds the wire form of an outbound request.
func EncodeRequest(requestID int, payload string) ([]byte, error) {
	b, err := json.Marshal(Request{RequestID: requestID, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return b, nil
}

// DecodeRequest parses the wire form of an outbound request.
func DecodeRequest(b []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(b, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if req.RequestID <= 0 {
		return Request{}, fmt.Errorf("%w: request id %d is not positive", ErrMalformedPayload, req.RequestID)
	}
	return req, nil
}

// EncodeEnvelope builds the wire form of a response envelope. The type tag is
// forced to ResponseType.
func EncodeEnvelope(env Envelope) ([]byte, error) {
	env.Type = ResponseType
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return b, nil
}

// DecodeEnvelope parses and validates an inbound response envelope.
func DecodeEnvelope(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Type != ResponseType {
		return Envelope{}, fmt.Errorf("%w: unexpected type %q", ErrMalformedEnvelope, env.Type)
	}
	if env.RequestID <= 0 {
		return Envelope{}, fmt.Errorf("%w: request id %d is not positive", ErrMalformedEnvelope, env.RequestID)
	}
	return env, nil
}

// EncodePayload serializes a command payload into its opaque string form.
func EncodePayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(b), nil
}

// DecodePayload parses an opaque payload string into a command schema.
func DecodePayload(payload string, v any) error {
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}
