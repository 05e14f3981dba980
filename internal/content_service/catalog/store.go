package catalog

import (
	"sync"

	"contentforge/internal/models"
)

// Store is the in-memory source of truth for the company profile and
// the ingested documents. It is injected into the Catalog at
// construction so tests and future persistence layers can swap it.
//
// The mutex only guards the in-process data structures. It is never
// held across a network call, so concurrent writers keep the documented
// last-write-wins behavior on the profile.
type Store struct {
	mu        sync.RWMutex
	profile   *models.CompanyProfile
	documents []*models.Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Profile returns a snapshot of the current profile, or nil when none
// is set.
func (s *Store) Profile() *models.CompanyProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// ReplaceProfile installs the given profile, replacing any prior one.
func (s *Store) ReplaceProfile(p *models.CompanyProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p.Clone()
}

// RemoveProfile clears the profile and returns the removed snapshot,
// or nil when none was set.
func (s *Store) RemoveProfile() *models.CompanyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.profile
	s.profile = nil
	return removed
}

// AppendDocument adds a document to the catalog.
func (s *Store) AppendDocument(d *models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, d.Clone())
}

// Documents returns snapshots of all documents in insertion order.
func (s *Store) Documents() []*models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Document, len(s.documents))
	for i, d := range s.documents {
		out[i] = d.Clone()
	}
	return out
}

// FindDocument looks a document up by id, file name or URL, first
// match wins. Returns nil when nothing matches.
func (s *Store) FindDocument(idOrName string) *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if matches(d, idOrName) {
			return d.Clone()
		}
	}
	return nil
}

// RemoveDocument removes the first document matching id, file name or
// URL and returns its snapshot, or nil when nothing matches.
func (s *Store) RemoveDocument(idOrName string) *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.documents {
		if matches(d, idOrName) {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return d
		}
	}
	return nil
}

func matches(d *models.Document, idOrName string) bool {
	if idOrName == "" {
		return false
	}
	return d.ID == idOrName ||
		(d.FileName != "" && d.FileName == idOrName) ||
		(d.URL != "" && d.URL == idOrName)
}
