package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

// Session ties one booking aggregate to its wizard. All handler access goes
// through the session so the store and wizard always move together.
type Session struct {
	ID     string
	Store  *Store
	Wizard *Wizard

	mu       sync.Mutex
	lastSeen time.Time
	trips    *models.TripsData
}

// SetTripsData records the latest search result so provider selection can
// validate against it. Cleared on a new search.
func (s *Session) SetTripsData(d *models.TripsData) {
	s.mu.Lock()
	s.trips = d
	s.mu.Unlock()
}

// TripsData returns the last recorded search result, nil before any search.
func (s *Session) TripsData() *models.TripsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trips
}

func newSession() *Session {
	store := NewStore()
	return &Session{
		ID:       uuid.NewString(),
		Store:    store,
		Wizard:   NewWizard(store),
		lastSeen: time.Now(),
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Registry holds the live sessions and evicts the ones idle past the TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

const sweepInterval = time.Minute

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go r.sweep()
	}
	return r
}

// Create starts a fresh session at the search stage.
func (r *Registry) Create() *Session {
	sess := newSession()
	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return sess
}

// Get returns the session and refreshes its idle timer. Unknown or already
// evicted IDs are not found.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NotFoundError{Resource: "session"}
	}
	sess.touch()
	return sess, nil
}

// Delete discards the session outright.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops the eviction sweep.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.evictIdle(now)
		}
	}
}

func (r *Registry) evictIdle(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sess := range r.sessions {
		if sess.idleSince(now) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
