// Package session keeps one merge engine per API client.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/metrics"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one client's merge workspace. A Merger is not safe for
// concurrent use, so every access goes through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	merger   *merge.Merger
	overlays *render.CurveList
	lastUsed time.Time
	stop     func()
}

// Do runs fn with exclusive access to the session's merger and overlays.
func (s *Session) Do(fn func(m *merge.Merger, overlays *render.CurveList) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.merger, s.overlays)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Manager creates, finds and expires sessions.
type Manager interface {
	Create() (*Session, error)
	Get(id string) (*Session, error)
	Delete(id string) error
	Prune(now time.Time) int
	Count() int
}

type manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     []merge.Option
	metrics  *metrics.Metrics
	ttl      time.Duration
}

// NewManager returns a Manager whose mergers are built with opts. Sessions
// idle for longer than ttl are removed by Prune; ttl <= 0 disables expiry.
// pm may be nil.
func NewManager(opts []merge.Option, pm *metrics.Metrics, ttl time.Duration) Manager {
	return &manager{
		sessions: make(map[string]*Session),
		opts:     opts,
		metrics:  pm,
		ttl:      ttl,
	}
}

func (sm *manager) Create() (*Session, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		merger:    merge.New(sm.opts...),
		overlays:  render.NewCurveList(),
		lastUsed:  now,
		stop:      func() {},
	}
	if sm.metrics != nil {
		s.stop = sm.metrics.Observe(s.merger)
	}

	sm.mu.Lock()
	sm.sessions[s.ID] = s
	n := len(sm.sessions)
	sm.mu.Unlock()

	sm.metrics.SetActiveSessions(n)
	log.Info().Str("sessionID", s.ID).Msg("Session created")
	return s, nil
}

func (sm *manager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	s, ok := sm.sessions[id]
	sm.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (sm *manager) Delete(id string) error {
	sm.mu.Lock()
	s, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	n := len(sm.sessions)
	sm.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.stop()
	sm.metrics.SetActiveSessions(n)
	log.Info().Str("sessionID", id).Msg("Session deleted")
	return nil
}

func (sm *manager) Prune(now time.Time) int {
	if sm.ttl <= 0 {
		return 0
	}
	sm.mu.Lock()
	var expired []*Session
	for id, s := range sm.sessions {
		if now.Sub(s.idleSince()) > sm.ttl {
			expired = append(expired, s)
			delete(sm.sessions, id)
		}
	}
	n := len(sm.sessions)
	sm.mu.Unlock()

	for _, s := range expired {
		s.stop()
		log.Info().Str("sessionID", s.ID).Msg("Session expired")
	}
	if len(expired) > 0 {
		sm.metrics.SetActiveSessions(n)
	}
	return len(expired)
}

func (sm *manager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// RunJanitor prunes m every interval until ctx is done.
func RunJanitor(ctx context.Context, m Manager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.Prune(now); n > 0 {
				log.Debug().Int("expired", n).Int("remaining", m.Count()).Msg("Pruned idle sessions")
			}
		}
	}
}
