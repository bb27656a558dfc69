// Package session keeps the in-memory registry of live wizard sessions. No
// durable storage: a restart forgets every in-flight record, which is the
// intended lifecycle.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"onboard/internal/domain/wizard"
)

type entry struct {
	controller *wizard.Controller
	expires    time.Time
}

// Manager maps session IDs to wizard controllers. Each controller serializes
// its own mutations; the manager only guards the map.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	factory func() *wizard.Controller
}

func NewManager(ttl time.Duration, factory func() *wizard.Controller) *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		ttl:     ttl,
		factory: factory,
	}
}

func (m *Manager) Create() (string, *wizard.Controller) {
	id := uuid.NewString()
	controller := m.factory()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = &entry{
		controller: controller,
		expires:    time.Now().Add(m.ttl),
	}
	return id, controller
}

func (m *Manager) Get(id string) (*wizard.Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.controller, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Sweep evicts expired sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps on an interval until the context is cancelled.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
