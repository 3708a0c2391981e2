package ecs

import "github.com/milk9111/brawler/ecs/component"

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Query returns the live entities that carry every listed component kind.
func (w *World) Query(kinds ...component.Identifier) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, kind := range kinds {
		store, ok := w.stores[kind.ID()]
		if !ok || store.len() == 0 {
			return nil
		}
		stores = append(stores, store)
	}

	smallest := 0
	for i, store := range stores {
		if store.len() < stores[smallest].len() {
			smallest = i
		}
	}

	out := make([]Entity, 0, stores[smallest].len())
next:
	for _, e := range stores[smallest].entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for i, store := range stores {
			if i != smallest && !store.has(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first entity carrying every listed kind.
func (w *World) First(kinds ...component.Identifier) (Entity, bool) {
	entities := w.Query(kinds...)
	if len(entities) == 0 {
		return 0, false
	}
	return entities[0], true
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if store, ok := w.stores[kind.ID()]; ok {
		if typed, ok := store.(*sparseSet[T]); ok {
			return typed
		}
		return nil
	}
	if !create {
		return nil
	}
	typed := &sparseSet[T]{}
	w.stores[kind.ID()] = typed
	return typed
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	store := storeFor(w, kind, true)
	if store == nil {
		return component.ErrInvalidComponentKind
	}
	store.set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	store := storeFor(w, kind, false)
	if store == nil {
		return nil, false
	}
	return store.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	store := storeFor(w, kind, false)
	if store == nil {
		return false
	}
	return store.remove(e)
}

// ForEach visits every live entity carrying kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(kind) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every live entity carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
