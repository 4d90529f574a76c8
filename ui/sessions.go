package ui

import (
	"context"
	"sync"
	"time"

	"csvexplorer/app"
	"csvexplorer/domain/core"
	"csvexplorer/internal"
)

// session is the per-browser state: the current upload, or the last load
// failure to show inline
type session struct {
	upload    *app.Upload
	loadError string
	touched   time.Time
}

// SessionStore keeps one uploaded table per browser session in memory.
// Entries idle longer than the TTL are dropped by Sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*session
	ttl      time.Duration
	now      func() time.Time
	logger   *internal.Logger
}

// NewSessionStore creates an empty store
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[core.SessionID]*session),
		ttl:      ttl,
		now:      time.Now,
		logger:   internal.DefaultLogger.Component("Sessions"),
	}
}

// Get returns the upload held by id, if any
func (s *SessionStore) Get(id core.SessionID) (*app.Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.upload == nil {
		return nil, false
	}
	sess.touched = s.now()
	return sess.upload, true
}

// Put replaces the session's table wholesale and clears any load error
func (s *SessionStore) Put(id core.SessionID, upload *app.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &session{upload: upload, touched: s.now()}
	s.logger.Debug("session %s holds %s (%s)", id, upload.Manifest.Filename, upload.Table.Shape())
}

// SetLoadError records a failed upload; the previous table is discarded
func (s *SessionStore) SetLoadError(id core.SessionID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &session{loadError: message, touched: s.now()}
}

// TakeLoadError returns and clears the pending load error
func (s *SessionStore) TakeLoadError(id core.SessionID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ""
	}
	msg := sess.loadError
	sess.loadError = ""
	if sess.upload == nil {
		delete(s.sessions, id)
	}
	return msg
}

// Delete drops the session
func (s *SessionStore) Delete(id core.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired %d idle sessions, %d remain", removed, len(s.sessions))
	}
	return removed
}

// Run sweeps periodically until ctx is cancelled
func (s *SessionStore) Run(ctx context.Context) error {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
