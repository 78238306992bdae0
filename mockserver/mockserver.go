package mockserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	env "github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/explay-project/sdk/mockserver/store"
	"github.com/explay-project/sdk/protocol"
)

const (
	capabilityGameServices = "gameservices"
	capabilityLogging      = "logging"
	capabilityMetrics      = "metrics"
	functionReady          = "ready"
)

// Domain error messages surfaced through failure envelopes.
const (
	msgNotSignedIn = "User not signed in"
	msgKeyNotFound = "Key not found"
)

var (
	// ErrUnexpectedNamespace is returned when the namespace is not as expected.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when the capability is not as expected.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrNoDeliver is returned when a response is ready but no deliver entry
	// point has been assigned.
	ErrNoDeliver = errors.New("no deliver entry point configured")
)

// Config represents the configuration for creating a Server instance.
type Config struct {
	// StatePath is the location of the durable state document.
	// Defaults to store.DefaultPath.
	StatePath string `env:"EXPLAY_MOCK_STATE"`

	// SignedIn, UserID, Username, and Avatar seed the mock session identity
	// when the state document does not hold one yet.
	SignedIn bool   `env:"EXPLAY_MOCK_SIGNED_IN" envDefault:"true"`
	UserID   int    `env:"EXPLAY_MOCK_USER_ID" envDefault:"1"`
	Username string `env:"EXPLAY_MOCK_USERNAME" envDefault:"TestUser"`
	Avatar   string `env:"EXPLAY_MOCK_AVATAR" envDefault:"https://placehold.co/400x400?text=TEST"`

	// ExpectedNamespace, when set, rejects host calls scoped to any other
	// namespace.
	ExpectedNamespace string

	// Logger receives mock activity and forwarded guest log lines.
	Logger *logrus.Logger

	// Store overrides the persisted record store.
	Store store.Store

	// Deliver routes response envelopes into the guest.
	Deliver func([]byte) ([]byte, error)
}

// FromEnv builds a Config from EXPLAY_MOCK_* environment variables, falling
// back to the same defaults the original mock identity uses.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse mock config from environment: %w", err)
	}
	return cfg, nil
}

// Server simulates the GameServices host counterpart.
type Server struct {
	// Deliver routes response envelopes into the guest. Assign after the
	// client exists when construction order requires it.
	Deliver func([]byte) ([]byte, error)

	expectedNamespace string
	log               *logrus.Logger
	store             store.Store

	mu       sync.Mutex
	counters map[string]int
}

// New creates a Server, opening (or creating) its state document and seeding
// the session identity when none is persisted yet.
func New(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.New()
	}

	st := config.Store
	if st == nil {
		var err error
		st, err = store.Open(store.Config{Path: config.StatePath})
		if err != nil {
			return nil, err
		}
	}

	if st.Identity() == (store.Identity{}) {
		identity := store.Identity{
			SignedIn: config.SignedIn,
			UserID:   config.UserID,
			Username: config.Username,
			Avatar:   config.Avatar,
		}
		if identity.UserID == 0 {
			identity.UserID = 1
		}
		if identity.Username == "" {
			identity.Username = "TestUser"
		}
		if identity.Avatar == "" {
			identity.Avatar = "https://placehold.co/400x400?text=TEST"
		}
		if err := st.SetIdentity(identity); err != nil {
			return nil, err
		}
	}

	s := &Server{
		Deliver:           config.Deliver,
		expectedNamespace: config.ExpectedNamespace,
		log:               logger,
		store:             st,
		counters:          make(map[string]int),
	}

	s.log.Debug("mock > server ready")
	return s, nil
}

// UpdateIdentity replaces and persists the mock session identity.
func (s *Server) UpdateIdentity(identity store.Identity) error {
	return s.store.SetIdentity(identity)
}

// SeedRecords upserts and persists the given records.
func (s *Server) SeedRecords(records []store.Record) error {
	for _, r := range records {
		if err := s.store.Set(r); err != nil {
			return err
		}
	}
	return nil
}

// Counters returns a snapshot of the metric increments received so far.
func (s *Server) Counters() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]int, len(s.counters))
	for name, count := range s.counters {
		snapshot[name] = count
	}
	return snapshot
}

// HostCall simulates the host side of the waPC boundary. GameServices
// commands are processed against the store and answered through Deliver;
// logging and metrics calls are absorbed locally.
func (s *Server) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	if s.expectedNamespace != "" && namespace != s.expectedNamespace {
		return nil, fmt.Errorf(
			"%w: expected namespace %s, got %s",
			ErrUnexpectedNamespace,
			s.expectedNamespace,
			namespace,
		)
	}

	switch capability {
	case capabilityLogging:
		s.logGuestLine(function, payload)
		return nil, nil

	case capabilityMetrics:
		s.countMetric(payload)
		return nil, nil

	case capabilityGameServices:
		if function == functionReady {
			s.log.Debug("mock > game ready")
			return nil, nil
		}
		return s.handleCommand(protocol.Command(function), payload)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnexpectedCapability, capability)
}

// logGuestLine forwards a guest log line to the configured logger at the
// matching level.
func (s *Server) logGuestLine(level string, payload []byte) {
	message := string(payload)
	switch level {
	case "Error":
		s.log.Error(message)
	case "Warn":
		s.log.Warn(message)
	case "Debug":
		s.log.Debug(message)
	case "Trace":
		s.log.Trace(message)
	default:
		s.log.Info(message)
	}
}

// countMetric tallies a counter increment for later inspection.
func (s *Server) countMetric(payload []byte) {
	var sample struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(payload, &sample); err != nil || sample.Name == "" {
		return
	}

	s.mu.Lock()
	s.counters[sample.Name]++
	s.mu.Unlock()
}

// handleCommand decodes the outbound request envelope, runs the command, and
// pushes a response envelope through Deliver.
func (s *Server) handleCommand(command protocol.Command, payload []byte) ([]byte, error) {
	req, err := protocol.DecodeRequest(payload)
	if err != nil {
		// Without a request id there is nothing to correlate a response to.
		s.log.Errorf("mock > dropping %s request with malformed envelope: %v", command, err)
		return nil, err
	}

	s.log.Debugf("mock > %s request %d payload %s", command, req.RequestID, req.Payload)

	data, errMsg := s.run(command, req.Payload)
	return nil, s.respond(req.RequestID, data, errMsg)
}

// run executes a single command and reports either a success payload or a
// failure message. Malformed payloads fail the request, never the process.
func (s *Server) run(command protocol.Command, payload string) (data, errMsg string) {
	switch command {
	case protocol.CommandIsUserSignedIn:
		return s.handleIsUserSignedIn()

	case protocol.CommandGetUserDetails:
		return s.handleGetUserDetails()

	case protocol.CommandGetUserData:
		return s.handleGetUserData(payload)

	case protocol.CommandSetUserData:
		return s.handleSetUserData(payload)

	case protocol.CommandListUserData:
		return s.handleListUserData()

	case protocol.CommandDeleteUserData:
		return s.handleDeleteUserData(payload)
	}

	return "", fmt.Sprintf("Unknown message type: %s", command)
}

// respond builds the response envelope and delivers it into the guest.
func (s *Server) respond(requestID int, data, errMsg string) error {
	b, err := protocol.EncodeEnvelope(protocol.Envelope{
		RequestID: requestID,
		Success:   errMsg == "",
		Data:      data,
		Error:     errMsg,
	})
	if err != nil {
		return err
	}

	s.log.Debugf("mock > response %d success=%t data=%s error=%s", requestID, errMsg == "", data, errMsg)

	if s.Deliver == nil {
		return ErrNoDeliver
	}
	if _, err := s.Deliver(b); err != nil {
		s.log.Errorf("mock > guest rejected delivery for request %d: %v", requestID, err)
	}
	return nil
}
