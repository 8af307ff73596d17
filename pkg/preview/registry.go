package preview

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sigkit/pkg/cache"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// DefaultCapacity bounds a registry created without one.
const DefaultCapacity = 1000

// RegistryConfig bounds how many workspaces stay in memory and for how long.
type RegistryConfig struct {
	// Capacity is the number of live workspaces. Creating one more evicts
	// the least recently used.
	Capacity int
	// IdleTTL drops a workspace nobody touched for that long. Zero keeps it
	// until capacity pushes it out.
	IdleTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type slot struct {
	surface *Surface
	seen    atomic.Int64
}

// Registry keeps one Surface per editor workspace, in memory.
type Registry struct {
	items *cache.LRU[string, *slot]
	ttl   time.Duration
	now   func() time.Time
	opts  []Option

	onEvict atomic.Pointer[func(id string)]
}

// NewRegistry creates a registry. The options are applied to every new Surface.
func NewRegistry(cfg RegistryConfig, opts ...Option) *Registry {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	r := &Registry{
		items: cache.NewLRU[string, *slot](cfg.Capacity),
		ttl:   cfg.IdleTTL,
		now:   cfg.Now,
		opts:  opts,
	}
	r.items.OnEvict(func(id string, _ *slot) {
		if fn := r.onEvict.Load(); fn != nil {
			(*fn)(id)
		}
	})
	return r
}

// OnEvict registers fn to run whenever a workspace leaves the registry,
// whether deleted, expired or pushed out by capacity. fn must not call back
// into the registry.
func (r *Registry) OnEvict(fn func(id string)) {
	r.onEvict.Store(&fn)
}

// Create starts a workspace loaded with the default preset.
func (r *Registry) Create() (string, *Surface) {
	s := NewSurface(r.opts...)
	s.Load(signature.Default())

	id := uuid.NewString()
	sl := &slot{surface: s}
	sl.seen.Store(r.now().UnixNano())
	r.items.Put(id, sl)
	return id, s
}

// Get returns the workspace surface and marks it as used.
func (r *Registry) Get(id string) (*Surface, error) {
	sl, ok := r.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	now := r.now().UnixNano()
	if r.ttl > 0 && now-sl.seen.Load() > int64(r.ttl) {
		r.items.Remove(id)
		return nil, fmt.Errorf("%w: %s expired", ErrWorkspaceNotFound, id)
	}
	sl.seen.Store(now)
	return sl.surface, nil
}

// Delete discards a workspace. Unknown ids are ignored.
func (r *Registry) Delete(id string) {
	r.items.Remove(id)
}

// Len returns the number of workspaces held, expired ones included until
// they are next looked up or pushed out.
func (r *Registry) Len() int {
	return r.items.Len()
}
