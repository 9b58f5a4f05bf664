package wsdl

import (
	"sync"

	"github.com/pyneda/wsdlwizard/lib"
)

// FoundSet is an append-only set of normalized WSDL URLs, preserving insertion order.
// It is safe for concurrent use.
type FoundSet struct {
	mu    sync.RWMutex
	items []string
	index map[string]struct{}
}

func NewFoundSet() *FoundSet {
	return &FoundSet{index: make(map[string]struct{})}
}

// Add normalizes rawURL and stores it, returning false if it was already present
func (s *FoundSet) Add(rawURL string) bool {
	normalized := NormalizeURL(rawURL)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[normalized]; ok {
		return false
	}
	s.index[normalized] = struct{}{}
	s.items = append(s.items, normalized)
	return true
}

// Contains reports whether the normalized form of rawURL is in the set
func (s *FoundSet) Contains(rawURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[NormalizeURL(rawURL)]
	return ok
}

func (s *FoundSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Items returns the entries in insertion order
func (s *FoundSet) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]string, len(s.items))
	copy(items, s.items)
	return items
}

// Sorted returns the entries sorted lexically
func (s *FoundSet) Sorted() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lib.SortedCopy(s.items)
}

// CandidateSet is an ordered set of base URLs worth probing, deduplicated by exact string
type CandidateSet struct {
	items []string
	index map[string]struct{}
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{index: make(map[string]struct{})}
}

func (c *CandidateSet) add(candidate string) bool {
	if _, ok := c.index[candidate]; ok {
		return false
	}
	c.index[candidate] = struct{}{}
	c.items = append(c.items, candidate)
	return true
}

func (c *CandidateSet) Contains(candidate string) bool {
	_, ok := c.index[candidate]
	return ok
}

func (c *CandidateSet) Len() int {
	return len(c.items)
}

// Items returns the candidates in insertion order
func (c *CandidateSet) Items() []string {
	items := make([]string, len(c.items))
	copy(items, c.items)
	return items
}
