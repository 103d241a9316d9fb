package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dwikikusuma/phonestore/internal/cart/domain"
)

type session struct {
	mu       sync.Mutex
	cart     *domain.Cart
	lastSeen time.Time
}

// SessionStore keeps carts in process memory. Sessions idle for longer than
// the TTL are dropped by Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	newCart  func() *domain.Cart
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		newCart:  domain.New,
	}
}

func (s *SessionStore) acquire(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{cart: s.newCart()}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *SessionStore) Update(ctx context.Context, sessionID string, fn func(c *domain.Cart)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sess := s.acquire(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.cart)
	return nil
}

func (s *SessionStore) View(ctx context.Context, sessionID string, fn func(c *domain.Cart)) error {
	return s.Update(ctx, sessionID, fn)
}

func (s *SessionStore) Drop(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle since before now-ttl and returns how many went.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration, log *slog.Logger) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Sweep(); n > 0 && log != nil {
				log.Info("expired cart sessions", slog.Int("count", n), slog.Int("live", s.Len()))
			}
		}
	}
}
