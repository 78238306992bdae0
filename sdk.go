package sdk

import (
	"fmt"

	wapc "github.com/wapc/wapc-guest-tinygo"
)

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "explay"

const (
	// deliverFunction is the guest function the host invokes to deliver
	// response envelopes.
	deliverFunction = "deliver"

	// readyCapability and readyFunction form the host call announcing that
	// the guest finished booting and can receive deliveries.
	readyCapability = "gameservices"
	readyFunction   = "ready"
)

var (
	// ErrHandlerNil is returned when the provided deliver handler is nil.
	ErrHandlerNil = fmt.Errorf("deliver handler cannot be nil")
)

// Config provides configuration options for SDK initialization.
type Config struct {
	// Namespace controls the namespace used to scope host interactions.
	// If empty, DefaultNamespace is used.
	Namespace string

	// Handler is the function registered as the inbound deliver entry point.
	// The host invokes it with a response envelope; the gameservices client
	// exposes a compatible Deliver method.
	Handler func([]byte) ([]byte, error)

	// HostCall overrides the waPC host function used for the ready
	// announcement. Primarily for testing.
	HostCall func(string, string, string, []byte) ([]byte, error)
}

// RuntimeConfig carries configuration that is used during creation of SDK components.
type RuntimeConfig struct {
	// Namespace is the namespace used to scope host interactions.
	Namespace string
}

// SDK represents the initialized runtime with a registered deliver handler.
type SDK struct {
	// runtime holds the current runtime configuration snapshot.
	runtime RuntimeConfig

	// handler is the function registered as the inbound deliver entry point.
	handler func([]byte) ([]byte, error)

	// hostCall is the waPC host function used for the ready announcement.
	hostCall func(string, string, string, []byte) ([]byte, error)
}

// New initializes the SDK, registers the deliver handler with waPC, and
// announces readiness to the host.
func New(config Config) (*SDK, error) {
	// Validate Handler is not empty
	if config.Handler == nil {
		return nil, ErrHandlerNil
	}

	// Create runtime configuration with defaults
	cfg := RuntimeConfig{Namespace: DefaultNamespace}

	// Override defaults with provided configuration
	if config.Namespace != "" {
		cfg.Namespace = config.Namespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	// Create SDK instance
	s := &SDK{
		runtime:  cfg,
		handler:  config.Handler,
		hostCall: hostCall,
	}

	// Register the inbound entry point with waPC
	wapc.RegisterFunction(deliverFunction, s.handler)

	// Tell the host the guest is ready to receive deliveries. One-way; the
	// host returns nothing of interest.
	_, _ = s.hostCall(cfg.Namespace, readyCapability, readyFunction, nil)

	return s, nil
}

// Config returns the current runtime configuration snapshot.
func (s *SDK) Config() RuntimeConfig { return s.runtime }
