package store

import (
	"errors"
)

// DefaultPath is the storage identifier used when no explicit path is given.
const DefaultPath = "explay_mock_state.json"

var (
	// ErrInvalidKey is returned for operations on an empty key.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrKeyNotFound is returned when a key has no stored record.
	ErrKeyNotFound = errors.New("key not found")
)

// Record is a persisted key/value pair with its visibility flag.
type Record struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Public bool   `json:"isPublic"`
}

// Identity is the mock session state: a single signed-in flag plus the user
// details returned by GET_USER_DETAILS.
type Identity struct {
	SignedIn bool   `json:"signedIn"`
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Store is the persistence interface used by the mock counterpart.
type Store interface {
	// Get returns the record stored under key.
	Get(key string) (Record, error)

	// Set upserts a record and persists the store.
	Set(record Record) error

	// Delete removes the record stored under key and persists the store.
	Delete(key string) error

	// Records returns all stored records sorted by key.
	Records() []Record

	// Identity returns the persisted session identity.
	Identity() Identity

	// SetIdentity replaces the session identity and persists the store.
	SetIdentity(identity Identity) error

	// Close releases any resources held by the store.
	Close() error
}
