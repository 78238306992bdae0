package gameservices

import (
	"errors"
	"fmt"
	"sync"
	"time"

	wapc "github.com/wapc/wapc-guest-tinygo"

	sdk "github.com/explay-project/sdk"
	"github.com/explay-project/sdk/logging"
	"github.com/explay-project/sdk/metrics"
	"github.com/explay-project/sdk/protocol"
)

const capabilityName = "gameservices"

// DefaultTimeout bounds how long a dispatched request may stay pending
// before it completes with ErrRequestTimeout.
const DefaultTimeout = 10 * time.Second

var (
	// ErrRequestFailed indicates the host answered with a failure envelope.
	// The host's message is carried in the wrapped error text.
	ErrRequestFailed = errors.New("request failed")

	// ErrRequestTimeout indicates no response arrived within the timeout.
	ErrRequestTimeout = errors.New("request timed out")
)

// HostCall defines the waPC host function signature used for outbound sends.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Result is the tagged outcome of a dispatched request: either a success
// payload or an error of kind ErrRequestFailed, ErrRequestTimeout, or
// sdk.ErrHostCall.
type Result struct {
	// Data is the opaque success payload string.
	Data string

	// Err is set when the request did not succeed.
	Err error
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for outbound sends.
	HostCall HostCall

	// Logger overrides the logging client used for recovered errors.
	Logger logging.Client

	// Timeout overrides the per-request deadline. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// pendingRequest is one in-flight exchange: the continuation channel and the
// timer that expires it.
type pendingRequest struct {
	result chan Result
	timer  *time.Timer
}

// Client is the GameServices capability client and request dispatcher.
type Client struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall
	log      logging.Client
	timeout  time.Duration

	requests *metrics.Counter
	failures *metrics.Counter
	timeouts *metrics.Counter

	// mu guards nextID and pending. Resolution and timeout expiry race on a
	// multi-threaded host; removing the entry under the lock is what keeps
	// completion at-most-once.
	mu      sync.Mutex
	nextID  int
	pending map[int]*pendingRequest
}

// New creates a Client with namespace defaults and optional overrides for
// the host call, logger, and timeout.
func New(config Config) (*Client, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = sdk.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	logger := config.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{SDKConfig: runtime, HostCall: hostCall})
		if err != nil {
			return nil, err
		}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	m, err := metrics.New(metrics.Config{SDKConfig: runtime, HostCall: metrics.HostCall(hostCall)})
	if err != nil {
		return nil, err
	}

	c := &Client{
		runtime:  runtime,
		hostCall: hostCall,
		log:      logger,
		timeout:  timeout,
		pending:  make(map[int]*pendingRequest),
	}

	for name, counter := range map[string]**metrics.Counter{
		"gameservices_requests_total": &c.requests,
		"gameservices_failures_total": &c.failures,
		"gameservices_timeouts_total": &c.timeouts,
	} {
		if *counter, err = m.NewCounter(name); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Dispatch sends a command to the host and returns a buffered channel that
// receives exactly one Result: the host's response, a failure, or a timeout.
// It never blocks on the host.
func (c *Client) Dispatch(command protocol.Command, payload string) (<-chan Result, error) {
	if !command.Valid() {
		return nil, fmt.Errorf("%w: %s", protocol.ErrUnknownCommand, command)
	}

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	p := &pendingRequest{result: make(chan Result, 1)}
	c.pending[id] = p
	p.timer = time.AfterFunc(c.timeout, func() { c.expire(id) })
	c.mu.Unlock()

	c.requests.Inc()

	b, err := protocol.EncodeRequest(id, payload)
	if err != nil {
		c.complete(id, Result{Err: err})
		return p.result, nil
	}

	if _, err := c.hostCall(c.runtime.Namespace, capabilityName, string(command), b); err != nil {
		// The send itself was refused; there is nothing to wait for.
		c.log.Error(fmt.Sprintf("Failed to send %s request %d: %v", command, id, err))
		c.complete(id, Result{Err: fmt.Errorf("%w: %v", sdk.ErrHostCall, err)})
	}

	return p.result, nil
}

// Deliver is the inbound entry point the host invokes with a response
// envelope. Malformed envelopes are logged and discarded without touching
// the pending table; the affected request eventually times out.
func (c *Client) Deliver(b []byte) ([]byte, error) {
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		c.log.Error(fmt.Sprintf("Failed to parse response: %v", err))
		return nil, err
	}

	c.resolve(env)
	return nil, nil
}

// Pending reports the number of in-flight requests.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// resolve completes the pending entry matching the envelope. Unknown or
// already-consumed request ids are a no-op.
func (c *Client) resolve(env protocol.Envelope) {
	p := c.take(env.RequestID)
	if p == nil {
		return
	}
	p.timer.Stop()

	if !env.Success {
		c.failures.Inc()
		c.log.Error(fmt.Sprintf("Request %d failed: %s", env.RequestID, env.Error))
		p.result <- Result{Err: fmt.Errorf("%w: %s", ErrRequestFailed, env.Error)}
		return
	}

	p.result <- Result{Data: env.Data}
}

// expire completes a pending entry whose deadline elapsed before any
// response arrived.
func (c *Client) expire(id int) {
	p := c.take(id)
	if p == nil {
		return
	}

	c.timeouts.Inc()
	c.log.Error(fmt.Sprintf("Request %d timed out", id))
	p.result <- Result{Err: ErrRequestTimeout}
}

// complete finishes a pending entry with the given result, cancelling its
// timer.
func (c *Client) complete(id int, result Result) {
	p := c.take(id)
	if p == nil {
		return
	}
	p.timer.Stop()
	p.result <- result
}

// take removes and returns the pending entry for id, or nil when the entry
// was already consumed. Whoever takes the entry owns its single completion.
func (c *Client) take(id int) *pendingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[id]
	if !ok {
		return nil
	}
	delete(c.pending, id)
	return p
}

// call dispatches a command and blocks for its single result. The request
// timeout bounds the wait.
func (c *Client) call(command protocol.Command, payload string) Result {
	ch, err := c.Dispatch(command, payload)
	if err != nil {
		return Result{Err: err}
	}
	return <-ch
}
