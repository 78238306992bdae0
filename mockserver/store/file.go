package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// document is the durable on-disk layout: identity fields at the top level
// plus the full entry list.
type document struct {
	Identity
	Entries []Record `json:"entries"`
}

// File is a Store persisted as a single JSON document on disk.
type File struct {
	path string

	mu       sync.Mutex
	identity Identity
	records  map[string]Record
	fresh    bool
}

// Config provides configuration options for opening a file store.
type Config struct {
	// Path is the location of the state document. Defaults to DefaultPath.
	Path string
}

// Ensure File satisfies the Store interface at compile time.
var _ Store = (*File)(nil)

// Open loads the state document at the configured path, starting empty when
// no document exists yet.
func Open(config Config) (*File, error) {
	path := config.Path
	if path == "" {
		path = DefaultPath
	}

	f := &File{
		path:    path,
		records: make(map[string]Record),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read state document %s: %w", path, err)
		}
		f.fresh = true
		return f, nil
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse state document %s: %w", path, err)
	}

	f.identity = doc.Identity
	for _, r := range doc.Entries {
		f.records[r.Key] = r
	}

	return f, nil
}

// Fresh reports whether Open found no existing document, meaning the caller
// may seed defaults.
func (f *File) Fresh() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fresh
}

// Get returns the record stored under key.
func (f *File) Get(key string) (Record, error) {
	if key == "" {
		return Record{}, ErrInvalidKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.records[key]
	if !ok {
		return Record{}, ErrKeyNotFound
	}
	return r, nil
}

// Set upserts a record and rewrites the state document.
func (f *File) Set(record Record) error {
	if record.Key == "" {
		return ErrInvalidKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[record.Key] = record
	return f.save()
}

// Delete removes a record and rewrites the state document.
func (f *File) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[key]; !ok {
		return ErrKeyNotFound
	}
	delete(f.records, key)
	return f.save()
}

// Records returns all stored records sorted by key.
func (f *File) Records() []Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedRecords()
}

// Identity returns the persisted session identity.
func (f *File) Identity() Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity
}

// SetIdentity replaces the session identity and rewrites the state document.
func (f *File) SetIdentity(identity Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.identity = identity
	return f.save()
}

// Close implements Store. The file handle is not held open between writes.
func (f *File) Close() error { return nil }

// save rewrites the entire state document. Callers must hold f.mu.
func (f *File) save() error {
	doc := document{
		Identity: f.identity,
		Entries:  f.sortedRecords(),
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state document: %w", err)
	}

	if err := os.WriteFile(f.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write state document %s: %w", f.path, err)
	}

	f.fresh = false
	return nil
}

// sortedRecords returns a by-key sorted copy. Callers must hold f.mu.
func (f *File) sortedRecords() []Record {
	records := make([]Record, 0, len(f.records))
	for _, r := range f.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records
}
