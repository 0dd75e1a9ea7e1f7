package workflow

import (
	"HospitalAdmin/forms"
	"sync"
	"time"
)

// Registry keeps one dialog per owner (a session) for a screen. Idle
// dialogs unused for longer than maxIdle are dropped.
type Registry[T any, I forms.Input] struct {
	cfg     Config[T, I]
	maxIdle time.Duration
	now     func() time.Time

	mu      sync.Mutex
	dialogs map[string]*entry[T, I]
}

type entry[T any, I forms.Input] struct {
	dialog   *Dialog[T, I]
	lastUsed time.Time
}

func NewRegistry[T any, I forms.Input](cfg Config[T, I], maxIdle time.Duration) *Registry[T, I] {
	return &Registry[T, I]{cfg: cfg, maxIdle: maxIdle, now: time.Now, dialogs: make(map[string]*entry[T, I])}
}

// For returns the dialog of owner, creating it on first use.
func (r *Registry[T, I]) For(owner string) *Dialog[T, I] {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	e, ok := r.dialogs[owner]
	if !ok {
		e = &entry[T, I]{dialog: NewDialog(r.cfg)}
		r.dialogs[owner] = e
	}
	e.lastUsed = now
	return e.dialog
}

// New returns a dialog not tracked by the registry, for one request.
func (r *Registry[T, I]) New() *Dialog[T, I] {
	return NewDialog(r.cfg)
}

func (r *Registry[T, I]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dialogs)
}

func (r *Registry[T, I]) sweep(now time.Time) {
	if r.maxIdle <= 0 {
		return
	}
	for owner, e := range r.dialogs {
		if now.Sub(e.lastUsed) > r.maxIdle && e.dialog.State() == Idle {
			delete(r.dialogs, owner)
		}
	}
}
