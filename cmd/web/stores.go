package main

import (
	"sync"

	"buylink.app/buylink-web/internal/estimate"
)

// quoteStore keeps one estimate fetcher per session so overlapping estimate
// requests from the same user resolve last-write-wins.
type quoteStore struct {
	mu       sync.Mutex
	fetchers map[string]*estimate.Fetcher
}

func newQuoteStore() *quoteStore {
	return &quoteStore{fetchers: map[string]*estimate.Fetcher{}}
}

func (s *quoteStore) forSession(sessionID string) *estimate.Fetcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fetchers[sessionID]
	if !ok {
		// quote state is cheap to rebuild; reset wholesale rather than track age
		if len(s.fetchers) >= 10000 {
			s.fetchers = map[string]*estimate.Fetcher{}
		}
		f = estimate.NewFetcher(backend, appLogger)
		s.fetchers[sessionID] = f
	}
	return f
}
