package sdk

import (
	"errors"
	"testing"
)

type testCase struct {
	name      string
	namespace string
	handler   func(b []byte) ([]byte, error)
	wantErr   error
	wantNs    string
}

func TestNew(t *testing.T) {
	hostCalls := 0
	hostCall := func(namespace, capability, function string, payload []byte) ([]byte, error) {
		hostCalls++
		if capability != "gameservices" || function != "ready" {
			t.Errorf("unexpected ready announcement %s/%s", capability, function)
		}
		return nil, nil
	}

	testCases := []testCase{
		{
			name:      "Valid Config",
			namespace: "valid",
			handler:   func(b []byte) ([]byte, error) { return b, nil },
			wantErr:   nil,
			wantNs:    "valid",
		},
		{
			name:      "Empty Namespace",
			namespace: "",
			handler:   func(b []byte) ([]byte, error) { return b, nil },
			wantErr:   nil,
			wantNs:    DefaultNamespace,
		},
		{
			name:      "Nil Handler",
			namespace: "invalid",
			handler:   nil,
			wantErr:   ErrHandlerNil,
			wantNs:    "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(Config{Namespace: tc.namespace, Handler: tc.handler, HostCall: hostCall})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if err != nil {
				return
			}

			t.Run("Check Namespace", func(t *testing.T) {
				if s.Config().Namespace != tc.wantNs {
					t.Errorf("expected namespace %q, got %q", tc.wantNs, s.Config().Namespace)
				}
			})
		})
	}

	t.Run("Ready Announcements", func(t *testing.T) {
		// Every successful New above must have announced readiness exactly once.
		if hostCalls != 2 {
			t.Fatalf("expected 2 ready announcements, got %d", hostCalls)
		}
	})
}

func TestSDK_Behavior(t *testing.T) {
	noopHost := func(string, string, string, []byte) ([]byte, error) { return nil, nil }

	// Create two SDK instances up front to cover multiple registrations
	// and enable instance isolation checks.
	h1 := func(b []byte) ([]byte, error) { return b, nil }
	h2 := func(b []byte) ([]byte, error) { return nil, errors.New("boom") }

	s1, err := New(Config{Namespace: "one", Handler: h1, HostCall: noopHost})
	if err != nil {
		t.Fatalf("first New returned error: %v", err)
	}
	s2, err := New(Config{Namespace: "two", Handler: h2, HostCall: noopHost})
	if err != nil {
		t.Fatalf("second New returned error: %v", err)
	}

	t.Run("MultipleCalls_NoPanic", func(t *testing.T) {
		// If we reached here, both New calls above succeeded without panic.
		if s1 == nil || s2 == nil {
			t.Fatalf("expected non-nil SDK instances")
		}
	})

	t.Run("Config_Immutability", func(t *testing.T) {
		got := s1.Config()
		got.Namespace = "mutated"
		if s1.Config().Namespace != "one" {
			t.Fatalf("expected SDK namespace to remain 'one', got %q", s1.Config().Namespace)
		}
	})

	t.Run("InstancesIsolation", func(t *testing.T) {
		if s1.Config().Namespace != "one" || s2.Config().Namespace != "two" {
			t.Fatalf("expected namespaces 'one' and 'two', got %q and %q", s1.Config().Namespace, s2.Config().Namespace)
		}
	})
}
