package metrics

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	sdk "github.com/explay-project/sdk"
)

func TestNew(t *testing.T) {
	t.Parallel()

	customHostCall := func(string, string, string, []byte) ([]byte, error) {
		return nil, nil
	}

	tt := []struct {
		name        string
		namespace   string
		hostCall    HostCall
		wantNS      string
		wantHostPtr uintptr
	}{
		{
			name:      "custom namespace",
			namespace: "custom",
			wantNS:    "custom",
		},
		{
			name:        "default namespace with override",
			hostCall:    customHostCall,
			wantNS:      sdk.DefaultNamespace,
			wantHostPtr: reflect.ValueOf(customHostCall).Pointer(),
		},
	}

	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(Config{SDKConfig: sdk.RuntimeConfig{Namespace: tc.namespace}, HostCall: tc.hostCall})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			if c.runtime.Namespace != tc.wantNS {
				t.Fatalf("namespace mismatch: want %q, got %q", tc.wantNS, c.runtime.Namespace)
			}

			if tc.wantHostPtr != 0 {
				if got := reflect.ValueOf(c.hostCall).Pointer(); got != tc.wantHostPtr {
					t.Fatalf("hostcall pointer mismatch: want %v, got %v", tc.wantHostPtr, got)
				}
			}
		})
	}
}

func TestNewCounter(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name       string
		metricName string
		wantErr    error
	}{
		{"valid name", "gameservices_requests_total", nil},
		{"valid name with colon", "sdk:requests", nil},
		{"empty name", "", ErrInvalidMetricName},
		{"invalid characters", "bad name!", ErrInvalidMetricName},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(Config{HostCall: func(string, string, string, []byte) ([]byte, error) { return nil, nil }})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			_, err = c.NewCounter(tc.metricName)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCounterInc(t *testing.T) {
	t.Parallel()

	var calls int
	var lastFn string
	var lastPayload []byte
	hostCall := func(namespace, capability, function string, payload []byte) ([]byte, error) {
		calls++
		lastFn = function
		lastPayload = payload
		if capability != capabilityName {
			t.Errorf("capability mismatch: got %q", capability)
		}
		return nil, nil
	}

	c, err := New(Config{HostCall: hostCall})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	counter, err := c.NewCounter("requests_total")
	if err != nil {
		t.Fatalf("NewCounter returned error: %v", err)
	}

	counter.Inc()
	counter.Inc()

	if calls != 2 {
		t.Fatalf("expected 2 host calls, got %d", calls)
	}
	if lastFn != fnCounter {
		t.Fatalf("function mismatch: got %q", lastFn)
	}

	var sample counterSample
	if err := json.Unmarshal(lastPayload, &sample); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if sample.Name != "requests_total" {
		t.Fatalf("sample name mismatch: got %q", sample.Name)
	}
}
