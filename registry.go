package fdw

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ── Registry ───────────────────────────────────────────────
// One Adapter per host session, looked up by the session id the host passes on every
// call. Sessions are independent; each Adapter is still driven sequentially.

// Registry maps session ids to their adapters. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Adapter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Adapter)}
}

// Put installs a for id and returns the adapter it replaced, if any.
func (r *Registry) Put(id uuid.UUID, a *Adapter) *Adapter {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.sessions[id]
	r.sessions[id] = a
	return prev
}

// Get returns the adapter for id, or an ErrSession if the session was never initialised.
func (r *Registry) Get(id uuid.UUID) (*Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s is not initialised", ErrSession, id)
	}
	return a, nil
}

// Remove drops the adapter for id and returns it, or nil if there was none.
func (r *Registry) Remove(id uuid.UUID) *Adapter {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.sessions[id]
	delete(r.sessions, id)
	return a
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
