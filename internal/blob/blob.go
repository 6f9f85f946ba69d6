// Package blob keeps in-memory documents addressable by URL while a
// download is in flight.
package blob

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// URLPrefix starts every handle URL.
const URLPrefix = "blob:stripecsv/"

// ErrNotFound is returned by Open for unknown or revoked URLs.
var ErrNotFound = errors.New("blob not found")

// Handle addresses one stored document.
type Handle struct {
	URL         string
	ContentType string
	Size        int
}

// Store is an object-URL table. Handles must be revoked by whoever created
// them; the store never expires entries on its own.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Create copies data into the store and returns its handle.
func (s *Store) Create(data []byte, contentType string) (Handle, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Handle{}, fmt.Errorf("generating blob id: %w", err)
	}
	url := URLPrefix + id.String()

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.blobs[url] = buf
	s.mu.Unlock()

	return Handle{URL: url, ContentType: contentType, Size: len(buf)}, nil
}

// Open returns the bytes behind url.
func (s *Store) Open(url string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[url]
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	return data, nil
}

// Revoke releases url. Revoking an unknown URL is a no-op.
func (s *Store) Revoke(url string) {
	s.mu.Lock()
	delete(s.blobs, url)
	s.mu.Unlock()
}

// Len returns the number of live handles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
