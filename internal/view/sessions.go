package view

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phrazzld/taskbin/internal/config"
)

type session struct {
	screen   *Screen
	lastSeen time.Time
}

// Sessions maps browser session cookies to Screens. Screens are created on
// first use and evicted after a configurable idle period. The registry holds
// at most view.max_sessions entries; when full, the least recently used
// session is evicted.
type Sessions struct {
	mu      sync.Mutex
	screens *lru.Cache[uuid.UUID, *session]

	cookieName string
	idle       time.Duration
	noticeTTL  time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewSessions creates an empty session registry from the view configuration.
// A non-positive MaxSessions selects config.DefaultMaxSessions.
func NewSessions(cfg config.ViewConfig, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	size := cfg.MaxSessions
	if size <= 0 {
		size = config.DefaultMaxSessions
	}

	screens, err := lru.NewWithEvict(size, func(_ uuid.UUID, sess *session) {
		sess.screen.Close()
	})
	if err != nil {
		panic("view: " + err.Error())
	}

	return &Sessions{
		screens:    screens,
		cookieName: cfg.SessionCookie,
		idle:       cfg.SessionIdle,
		noticeTTL:  cfg.MessageTTL,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "sessions")),
	}
}

// Screen returns the Screen for the request's session, creating the session
// and setting its cookie when the request has none or an unknown one.
func (s *Sessions) Screen(w http.ResponseWriter, r *http.Request) *Screen {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(s.cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.screens.Get(id); ok {
				sess.lastSeen = s.now()
				return sess.screen
			}
		}
	}

	id := uuid.New()
	sess := &session{screen: NewScreen(s.noticeTTL), lastSeen: s.now()}
	if evicted := s.screens.Add(id, sess); evicted {
		s.logger.Debug("session limit reached, evicted least recently used session")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess.screen
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	return s.screens.Len()
}

// Sweep evicts sessions idle for longer than the configured period and
// returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	removed := 0
	for _, id := range s.screens.Keys() {
		sess, ok := s.screens.Peek(id)
		if ok && sess.lastSeen.Before(cutoff) {
			s.screens.Remove(id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions periodically until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context) {
	interval := s.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}
