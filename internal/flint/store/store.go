package store

import (
	"maps"
	"sync"
)

// Checksum records a verified content hash and size for one file identity.
type Checksum struct {
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

// Store holds the shared cached state for one build tree.
//
// One instance is created at process start and passed by reference into every
// component that needs it; sibling sub-projects share it rather than each
// opening their own, and the mutex serializes their writes.
type Store struct {
	mu           sync.RWMutex
	resolvedURLs map[string]string
	checksums    map[string]Checksum
}

// New creates an initialized empty Store.
func New() *Store {
	return &Store{
		resolvedURLs: make(map[string]string),
		checksums:    make(map[string]Checksum),
	}
}

// GetResolvedURL returns the cached URL for an artifact coordinate key.
func (s *Store) GetResolvedURL(coordinate string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.resolvedURLs[coordinate]
	return url, ok
}

// SetResolvedURL records the URL that resolved an artifact coordinate.
func (s *Store) SetResolvedURL(coordinate, url string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolvedURLs[coordinate] = url
}

// ResolvedURLsSnapshot returns a copy of all resolved URL entries.
func (s *Store) ResolvedURLsSnapshot() map[string]string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := make(map[string]string, len(s.resolvedURLs))
	maps.Copy(clone, s.resolvedURLs)
	return clone
}

// HasChecksum reports whether a checksum is cached for a file identity.
func (s *Store) HasChecksum(identity string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.checksums[identity]
	return ok
}

// GetChecksum returns the cached checksum for a file identity.
func (s *Store) GetChecksum(identity string) (Checksum, bool) {
	if s == nil {
		return Checksum{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, ok := s.checksums[identity]
	return sum, ok
}

// SetChecksum records a verified checksum for a file identity.
func (s *Store) SetChecksum(identity string, sum Checksum) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checksums[identity] = sum
}

// ChecksumsSnapshot returns a copy of all checksum entries.
func (s *Store) ChecksumsSnapshot() map[string]Checksum {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := make(map[string]Checksum, len(s.checksums))
	maps.Copy(clone, s.checksums)
	return clone
}

// ClearCaches drops all cached resolutions and checksums.
func (s *Store) ClearCaches() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolvedURLs = make(map[string]string)
	s.checksums = make(map[string]Checksum)
}
