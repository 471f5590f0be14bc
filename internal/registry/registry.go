// Package registry holds the ordered collection of brain regions that is
// the single source of truth for display. Regions are replaced wholesale
// when an edit session commits; they are never created or deleted at
// runtime.
package registry

import (
	"sync"
	"time"

	"github.com/allenzhu312/Brain/internal/types"
)

// RegionRegistry manages the ordered set of anatomical regions.
type RegionRegistry struct {
	regions  []types.Region
	index    map[string]int
	mutex    sync.RWMutex
	watchers []chan RegionEvent
}

// RegionEvent represents a change in the region registry.
type RegionEvent struct {
	Type      EventType
	Region    types.Region
	Timestamp time.Time
}

// EventType represents the type of region event.
type EventType int

const (
	// EventTypeReplaced fires when a committed draft replaces a region.
	EventTypeReplaced EventType = iota
)

// NewRegionRegistry creates a registry seeded with the given regions.
// Regions with a duplicate or empty id are dropped, keeping the first
// occurrence; persisted data has already passed the load boundary by the
// time it reaches here, so dropping is a defensive measure, not an error.
func NewRegionRegistry(regions []types.Region) *RegionRegistry {
	r := &RegionRegistry{
		regions:  make([]types.Region, 0, len(regions)),
		index:    make(map[string]int, len(regions)),
		watchers: make([]chan RegionEvent, 0),
	}
	for _, region := range regions {
		if region.ID == "" {
			continue
		}
		if _, exists := r.index[region.ID]; exists {
			continue
		}
		r.index[region.ID] = len(r.regions)
		r.regions = append(r.regions, region.Clone())
	}
	return r
}

// GetAll returns a deep-copied snapshot of all regions in display order.
func (r *RegionRegistry) GetAll() []types.Region {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]types.Region, len(r.regions))
	for i, region := range r.regions {
		out[i] = region.Clone()
	}
	return out
}

// GetByID retrieves a deep copy of the region with the given id.
func (r *RegionRegistry) GetByID(id string) (types.Region, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return types.Region{}, false
	}
	return r.regions[i].Clone(), true
}

// Replace swaps in a new value for the region whose id matches. It returns
// false (a no-op) when no region has that id; regions are never created
// through this path.
func (r *RegionRegistry) Replace(region types.Region) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i, exists := r.index[region.ID]
	if !exists {
		return false
	}
	r.regions[i] = region.Clone()

	r.notify(RegionEvent{
		Type:      EventTypeReplaced,
		Region:    r.regions[i].Clone(),
		Timestamp: time.Now(),
	})
	return true
}

// Count returns the number of regions.
func (r *RegionRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.regions)
}

// Watch returns a channel that receives region events. The rendering
// collaborator subscribes here to refresh labels after a commit.
func (r *RegionRegistry) Watch() <-chan RegionEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan RegionEvent, 16)
	r.watchers = append(r.watchers, ch)
	return ch
}

// Unwatch removes a watcher channel and closes it.
func (r *RegionRegistry) Unwatch(ch <-chan RegionEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all watchers without blocking. Callers must
// hold the write lock.
func (r *RegionRegistry) notify(event RegionEvent) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
