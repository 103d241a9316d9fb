// Package livesearch drives a search-as-you-type box: keystrokes are
// debounced, and a response is delivered only while it belongs to the most
// recent query. Superseded queries are left to finish and their results are
// dropped.
package livesearch

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

const (
	DefaultDelay = 300 * time.Millisecond
	minRunes     = 2
)

type SearchFunc func(ctx context.Context, term string) ([]domain.SearchResult, error)

type Result struct {
	Term       string
	Generation uint64
	Items      []domain.SearchResult
}

type Session struct {
	ctx     context.Context
	search  SearchFunc
	deliver func(Result)
	delay   time.Duration
	log     *slog.Logger

	mu    sync.Mutex
	timer *time.Timer

	// deliverMu makes the generation check and deliver one step, so an
	// older result can never land after a newer one or after Stop.
	deliverMu sync.Mutex
	stopped   atomic.Bool
	gen       atomic.Uint64
}

type Option func(*Session)

func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New returns a session that calls deliver from its own goroutines, one call
// at a time. deliver must not call Stop.
func New(ctx context.Context, search SearchFunc, deliver func(Result), opts ...Option) *Session {
	s := &Session{
		ctx:     ctx,
		search:  search,
		deliver: deliver,
		delay:   DefaultDelay,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Type records the box's current text and restarts the quiet window.
func (s *Session) Type(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(term) })
}

// Stop cancels a pending debounce and suppresses every later delivery. A
// delivery already in progress finishes before Stop returns.
func (s *Session) Stop() {
	s.mu.Lock()
	s.stopped.Store(true)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.deliverMu.Lock()
	s.gen.Add(1)
	s.deliverMu.Unlock()
}

func (s *Session) fire(term string) {
	gen := s.gen.Add(1)
	term = strings.TrimSpace(term)

	if utf8.RuneCountInString(term) < minRunes {
		s.publish(Result{Term: term, Generation: gen})
		return
	}

	items, err := s.search(s.ctx, term)
	if err != nil {
		s.log.ErrorContext(s.ctx, "live search failed", slog.String("term", term), slog.Any("err", err))
		items = nil
	}
	s.publish(Result{Term: term, Generation: gen, Items: items})
}

func (s *Session) publish(r Result) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.stopped.Load() || r.Generation != s.gen.Load() {
		s.log.DebugContext(s.ctx, "stale search response dropped",
			slog.String("term", r.Term), slog.Uint64("generation", r.Generation))
		return
	}
	s.deliver(r)
}
