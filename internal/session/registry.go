// Package session keeps one conversation per opaque identifier in memory.
// The registry implements core.SessionStore and srv.Service: idle sessions
// are evicted by a scheduled background sweep rather than opportunistically
// on requests.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/pkg/log"
)

type Config struct {
	// MaxExchanges bounds history to 2*MaxExchanges+1 messages (the system
	// instruction plus the most recent window).
	MaxExchanges int
	// IdleTimeout after which a sweep removes the session.
	IdleTimeout time.Duration
	// SweepInterval between background sweeps.
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxExchanges:  10,
		IdleTimeout:   30 * time.Minute,
		SweepInterval: 5 * time.Minute,
	}
}

type Registry struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*core.Session

	done chan struct{}
	now  func() time.Time
}

func NewRegistry(cfg Config) *Registry {
	if cfg.MaxExchanges <= 0 {
		cfg.MaxExchanges = DefaultConfig().MaxExchanges
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultConfig().IdleTimeout
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Registry{
		cfg:      cfg,
		sessions: make(map[string]*core.Session),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// GetOrCreate returns a snapshot of the session, creating it on first sight.
// A fresh session holds exactly the system instruction.
func (r *Registry) GetOrCreate(id string) core.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &core.Session{
			ID:       id,
			Messages: []core.Message{{Role: core.RoleSystem, Content: core.SystemInstruction}},
		}
		r.sessions[id] = s
	}
	s.LastActivity = r.now()

	return snapshot(s)
}

// AppendExchange appends a user/assistant turn pair and trims the history.
// Unknown ids are created first so a race with the sweeper cannot lose a
// turn.
func (r *Registry) AppendExchange(id string, user, assistant core.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &core.Session{
			ID:       id,
			Messages: []core.Message{{Role: core.RoleSystem, Content: core.SystemInstruction}},
		}
		r.sessions[id] = s
	}

	s.Messages = append(s.Messages, user, assistant)
	s.LastActivity = r.now()

	// Keep element 0 plus the most recent window. Older exchanges from the
	// middle are discarded: bounded prompts at the cost of long-range memory.
	limit := 2*r.cfg.MaxExchanges + 1
	if len(s.Messages) > limit {
		head := s.Messages[0]
		tail := s.Messages[len(s.Messages)-(limit-1):]
		trimmed := make([]core.Message, 0, limit)
		trimmed = append(trimmed, head)
		trimmed = append(trimmed, tail...)
		s.Messages = trimmed
	}
}

// Reset restores the session history to the system instruction alone.
// Returns false for an unknown id.
func (r *Registry) Reset(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	s.Messages = []core.Message{{Role: core.RoleSystem, Content: core.SystemInstruction}}
	s.LastActivity = r.now()
	return true
}

// Evict removes a session. Evicting an absent id is a no-op.
func (r *Registry) Evict(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Stats() core.SessionStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := core.SessionStats{ActiveSessions: len(r.sessions)}
	for _, s := range r.sessions {
		stats.TotalMessages += len(s.Messages)
	}
	return stats
}

// Sweep removes every session idle past the timeout and returns how many
// were evicted.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.cfg.IdleTimeout)
	evicted := 0
	for id, s := range r.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Start runs the sweep loop until shutdown or context cancellation.
func (r *Registry) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.done:
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug().Int("evicted", n).Msg("session sweep")
			}
		}
	}
}

func (r *Registry) Shutdown(ctx context.Context) error {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	return nil
}

func snapshot(s *core.Session) core.Session {
	msgs := make([]core.Message, len(s.Messages))
	copy(msgs, s.Messages)
	return core.Session{
		ID:           s.ID,
		Messages:     msgs,
		LastActivity: s.LastActivity,
	}
}
