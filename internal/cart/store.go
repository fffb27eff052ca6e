package cart

import (
	"sort"
	"sync"
	"time"
)

// DraftStore keeps per-session product drafts server-side. Drafts are page
// working state, too large for the signed cookie; they live here until the
// user adds them to the backend cart or the session is evicted.
type DraftStore struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*draftEntry
}

type draftEntry struct {
	drafts  []ProductDraft
	touched time.Time
}

const defaultMaxDraftSessions = 10000

// NewDraftStore builds an empty store. maxEntries <= 0 selects the default
// cap; the oldest sessions are evicted beyond it.
func NewDraftStore(maxEntries int) *DraftStore {
	if maxEntries <= 0 {
		maxEntries = defaultMaxDraftSessions
	}
	return &DraftStore{
		maxEntries: maxEntries,
		entries:    map[string]*draftEntry{},
	}
}

// Get returns a copy of the session's drafts.
func (s *DraftStore) Get(sessionID string) []ProductDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return nil
	}
	e.touched = time.Now()
	out := make([]ProductDraft, len(e.drafts))
	copy(out, e.drafts)
	return out
}

// Append adds a draft to the session's list.
func (s *DraftStore) Append(sessionID string, d ProductDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		e = &draftEntry{touched: time.Now()}
		s.entries[sessionID] = e
		s.evictLocked()
	}
	e.drafts = append(e.drafts, d)
	e.touched = time.Now()
}

// Set replaces the session's list wholesale.
func (s *DraftStore) Set(sessionID string, drafts []ProductDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(drafts) == 0 {
		delete(s.entries, sessionID)
		return
	}
	cp := make([]ProductDraft, len(drafts))
	copy(cp, drafts)
	e, ok := s.entries[sessionID]
	if !ok {
		e = &draftEntry{touched: time.Now()}
		s.entries[sessionID] = e
		s.evictLocked()
	}
	e.drafts = cp
	e.touched = time.Now()
}

// RemoveAt deletes the draft at index i, keeping order.
func (s *DraftStore) RemoveAt(sessionID string, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok || i < 0 || i >= len(e.drafts) {
		return
	}
	e.drafts = append(e.drafts[:i], e.drafts[i+1:]...)
	e.touched = time.Now()
	if len(e.drafts) == 0 {
		delete(s.entries, sessionID)
	}
}

// Clear drops the session's drafts.
func (s *DraftStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// evictLocked trims the store to maxEntries, oldest sessions first.
func (s *DraftStore) evictLocked() {
	if len(s.entries) <= s.maxEntries {
		return
	}
	type aged struct {
		id      string
		touched time.Time
	}
	all := make([]aged, 0, len(s.entries))
	for id, e := range s.entries {
		all = append(all, aged{id: id, touched: e.touched})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].touched.Before(all[j].touched) })
	for _, a := range all[:len(all)-s.maxEntries] {
		delete(s.entries, a.id)
	}
}
