package conversation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"speakup.app/intake/internal/model"
)

const evictInterval = time.Minute

// Manager holds the live conversations, one per browser session. Idle
// conversations are evicted after the configured TTL.
type Manager struct {
	classifier Classifier
	submitter  Submitter
	cfg        Config
	idleTTL    time.Duration
	opts       []Option

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ctrl     *Controller
	lastSeen time.Time
}

func NewManager(classifier Classifier, submitter Submitter, cfg Config, idleTTL time.Duration, opts ...Option) *Manager {
	return &Manager{
		classifier: classifier,
		submitter:  submitter,
		cfg:        cfg,
		idleTTL:    idleTTL,
		opts:       opts,
		entries:    make(map[string]*entry),
	}
}

// GetOrCreate returns the session's conversation, creating it with the
// given identity on first contact. The identity is captured at creation;
// later requests in the same session keep the original one.
func (m *Manager) GetOrCreate(sessionID string, user *model.User) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.ctrl
	}

	ctrl := New(user, m.classifier, m.submitter, m.cfg, m.opts...)
	m.entries[sessionID] = &entry{ctrl: ctrl, lastSeen: time.Now()}
	return ctrl
}

// Get returns the session's conversation if one exists.
func (m *Manager) Get(sessionID string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.ctrl, true
}

// Remove closes and drops the session's conversation.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[sessionID]; ok {
		e.ctrl.Close()
		delete(m.entries, sessionID)
	}
}

// Len reports the number of live conversations.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Run evicts idle conversations until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.C:
			m.evictIdle(ctx)
		}
	}
}

func (m *Manager) evictIdle(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.idleTTL)
	for sessionID, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			e.ctrl.Close()
			delete(m.entries, sessionID)
			slog.DebugContext(ctx, "evicted idle conversation", "conversation_id", e.ctrl.ID())
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sessionID, e := range m.entries {
		e.ctrl.Close()
		delete(m.entries, sessionID)
	}
}
