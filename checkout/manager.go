package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fitgear/fitgear-api/cache"
	"github.com/fitgear/fitgear-api/cart"
	"github.com/fitgear/fitgear-api/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultSessionTTL = 30 * time.Minute
	storeTimeout      = 3 * time.Second
)

// CartStore keeps cart snapshots outside the process so a session can be
// rebuilt after eviction or a restart. Load returns cache.ErrCacheMiss when
// nothing is stored. Snapshots should outlive the session TTL.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*cache.CartSnapshot, error)
	Save(ctx context.Context, sessionID string, snap cache.CartSnapshot) error
	Refresh(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
}

// Manager owns the live checkout sessions.
type Manager struct {
	cfg   Config
	store CartStore
	ttl   time.Duration
	log   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager builds a session registry. store may be nil.
func NewManager(cfg Config, store CartStore, ttl time.Duration) *Manager {
	cfg = cfg.withDefaults()
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	m := &Manager{
		store:    store,
		ttl:      ttl,
		log:      cfg.Logger,
		sessions: make(map[string]*Session),
	}
	cfg.OnCartChange = m.saveCart
	cfg.OnActivity = m.refreshCart
	m.cfg = cfg
	return m
}

// Create starts a new Idle session owned by principal.
func (m *Manager) Create(principal models.Principal) *Session {
	s := NewSession(uuid.Must(uuid.NewV7()).String(), principal, nil, m.cfg)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.log.Info("🛒 checkout session created", zap.String("session", s.ID()), zap.Bool("authenticated", principal.Authenticated()))
	return s
}

// Get returns the session id if principal may use it. A session that is no
// longer in memory is rebuilt, Idle, from its stored cart.
func (m *Manager) Get(ctx context.Context, id string, principal models.Principal) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		var err error
		if s, err = m.restore(ctx, id); err != nil {
			return nil, err
		}
	}
	if !principal.Owns(s.Principal()) {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) restore(ctx context.Context, id string) (*Session, error) {
	if m.store == nil {
		return nil, ErrSessionNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	snap, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			m.log.Warn("⚠️ cart snapshot unavailable", zap.String("session", id), zap.Error(err))
		}
		return nil, ErrSessionNotFound
	}
	c, err := cart.Restore(snap.Lines)
	if err != nil {
		m.log.Warn("⚠️ discarding corrupt cart snapshot", zap.String("session", id), zap.Error(err))
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id]; ok {
		return existing, nil
	}
	s := NewSession(id, snap.Owner, c, m.cfg)
	m.sessions[id] = s
	m.log.Info("♻️ checkout session restored", zap.String("session", id), zap.Int("lines", len(snap.Lines)))
	return s, nil
}

// Delete ends a session and forgets its stored cart.
func (m *Manager) Delete(ctx context.Context, id string, principal models.Principal) error {
	s, err := m.Get(ctx, id, principal)
	if err != nil {
		return err
	}
	s.close()

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Delete(ctx, id); err != nil {
			m.log.Warn("⚠️ failed to delete cart snapshot", zap.String("session", id), zap.Error(err))
		}
	}
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle for longer than the TTL. Sessions with a charge
// in flight are kept. Stored carts survive eviction and get a fresh expiry.
func (m *Manager) Sweep(now time.Time) int {
	var evicted []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		last, processing := s.idleSince()
		if processing || now.Sub(last) < m.ttl {
			continue
		}
		s.close()
		delete(m.sessions, id)
		evicted = append(evicted, s)
	}
	m.mu.Unlock()

	for _, s := range evicted {
		if len(s.lines()) > 0 {
			m.refreshCart(s)
		}
	}
	if len(evicted) > 0 {
		m.log.Info("🧹 evicted idle checkout sessions", zap.Int("count", len(evicted)))
	}
	return len(evicted)
}

// Run sweeps periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	interval := m.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.cfg.Now())
		}
	}
}

func (m *Manager) refreshCart(s *Session) {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := m.store.Refresh(ctx, s.id); err != nil {
		m.log.Warn("⚠️ failed to refresh cart snapshot", zap.String("session", s.id), zap.Error(err))
	}
}

func (m *Manager) saveCart(s *Session, lines []cart.Line) {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var err error
	if len(lines) == 0 {
		err = m.store.Delete(ctx, s.id)
	} else {
		err = m.store.Save(ctx, s.id, cache.CartSnapshot{
			Owner:   s.principal,
			Lines:   lines,
			SavedAt: m.cfg.Now().UTC(),
		})
	}
	if err != nil {
		m.log.Warn("⚠️ failed to persist cart snapshot", zap.String("session", s.id), zap.Error(err))
	}
}
