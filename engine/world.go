package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/event"
)

// World contains all entities, their components and the systems that run over them
// Tick-side mutation happens under the update lock; other goroutines enter through RunSafe
type World struct {
	nextEntityID core.Entity

	Resources  Resource
	Components ComponentStore

	// Lifecycle registry - all stores for uniform cleanup
	stores []AnyStore

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a world with every component store allocated
func NewWorld(res Resource) *World {
	w := &World{
		nextEntityID: 1,
		Resources:    res,
	}
	w.Components, w.stores = newComponentStore()
	return w
}

// CreateEntity reserves a new entity handle
func (w *World) CreateEntity() core.Entity {
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// Clear removes all entities and restarts handle allocation
func (w *World) Clear() {
	w.nextEntityID = 1
	for _, s := range w.stores {
		s.ClearAllComponents()
	}
}

// EntityCount returns the number of distinct entities holding at least one component
func (w *World) EntityCount() int {
	n := 0
	for e := core.Entity(1); e < w.nextEntityID; e++ {
		for _, s := range w.stores {
			if s.HasEntity(e) {
				n++
				break
			}
		}
	}
	return n
}

// AddSystem adds a system and keeps the list ordered by priority
// Systems with equal priority keep insertion order
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// InitSystems resets per-level state of every system
func (w *World) InitSystems() {
	for _, s := range w.systems {
		s.Init()
	}
}

// Update runs all systems in priority order, stopping at the first error
// Caller must hold the update lock
func (w *World) Update() error {
	for _, s := range w.systems {
		if err := s.Update(); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	return nil
}

// RunSafe executes fn while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the update lock
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// Unlock releases the update lock
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// PushEvent queues an event stamped with the current frame
// Caller must hold the update lock or be on the tick goroutine
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resources.Events.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.Resources.Time.FrameNumber,
	})
}
