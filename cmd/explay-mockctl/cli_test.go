package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/explay-project/sdk/mockserver/store"
)

// run executes the CLI against a fresh root command and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestUserShowDefaults(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	out, err := run(t, "--state", statePath, "user")
	if err != nil {
		t.Fatalf("user returned error: %v", err)
	}
	if !strings.Contains(out, "signedIn: false") || !strings.Contains(out, "userId:   0") {
		t.Fatalf("expected zero identity for fresh document, got:\n%s", out)
	}
}

func TestUserSet(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	if _, err := run(t, "--state", statePath, "user", "set",
		"--signed-in", "--id", "7", "--name", "PlayerSeven", "--avatar", "https://example.com/7.png"); err != nil {
		t.Fatalf("user set returned error: %v", err)
	}

	out, err := run(t, "--state", statePath, "user")
	if err != nil {
		t.Fatalf("user returned error: %v", err)
	}
	for _, want := range []string{"signedIn: true", "userId:   7", "username: PlayerSeven", "avatar:   https://example.com/7.png"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestUserSetPartialUpdate(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	if _, err := run(t, "--state", statePath, "user", "set", "--signed-in", "--id", "3", "--name", "Original"); err != nil {
		t.Fatalf("user set returned error: %v", err)
	}

	// Changing only the name must leave the other fields alone.
	if _, err := run(t, "--state", statePath, "user", "set", "--name", "Renamed"); err != nil {
		t.Fatalf("user set returned error: %v", err)
	}

	out, err := run(t, "--state", statePath, "user")
	if err != nil {
		t.Fatalf("user returned error: %v", err)
	}
	if !strings.Contains(out, "signedIn: true") || !strings.Contains(out, "userId:   3") || !strings.Contains(out, "username: Renamed") {
		t.Fatalf("expected partial update to preserve untouched fields, got:\n%s", out)
	}
}

func TestDataLifecycle(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	if _, err := run(t, "--state", statePath, "data", "set", "level", "42", "--public"); err != nil {
		t.Fatalf("data set returned error: %v", err)
	}
	if _, err := run(t, "--state", statePath, "data", "set", "score", "100"); err != nil {
		t.Fatalf("data set returned error: %v", err)
	}

	out, err := run(t, "--state", statePath, "data", "list")
	if err != nil {
		t.Fatalf("data list returned error: %v", err)
	}
	if !strings.Contains(out, "level\t42\tpublic") || !strings.Contains(out, "score\t100\tprivate") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	if _, err := run(t, "--state", statePath, "data", "delete", "level"); err != nil {
		t.Fatalf("data delete returned error: %v", err)
	}

	out, err = run(t, "--state", statePath, "data", "list")
	if err != nil {
		t.Fatalf("data list returned error: %v", err)
	}
	if strings.Contains(out, "level") {
		t.Fatalf("expected level to be deleted, got:\n%s", out)
	}
}

func TestDataListJSON(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	if _, err := run(t, "--state", statePath, "data", "set", "level", "42"); err != nil {
		t.Fatalf("data set returned error: %v", err)
	}

	out, err := run(t, "--state", statePath, "data", "list", "--json")
	if err != nil {
		t.Fatalf("data list returned error: %v", err)
	}
	if !strings.Contains(out, `"key": "level"`) || !strings.Contains(out, `"value": "42"`) {
		t.Fatalf("unexpected JSON output:\n%s", out)
	}
}

func TestDataDeleteMissing(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	if _, err := run(t, "--state", statePath, "data", "delete", "absent"); err == nil {
		t.Fatal("expected error deleting an absent key")
	}
}

func TestStateFileIsReadable(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.json")

	if _, err := run(t, "--state", statePath, "data", "set", "level", "42"); err != nil {
		t.Fatalf("data set returned error: %v", err)
	}

	// The document written by the CLI must open cleanly as a store.
	f, err := store.Open(store.Config{Path: statePath})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer f.Close() //nolint:errcheck

	r, err := f.Get("level")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if r.Value != "42" {
		t.Fatalf("unexpected record: %+v", r)
	}
}
