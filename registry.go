package paramwire

import (
	"fmt"
	"sort"
	"sync"

	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/param"
)

// TypeID identifies a payload type in diagnostics (captures, dumps). It is not
// part of any message; encoding is statically dispatched by trait.
type TypeID uint16

// TypeInfo describes one registered type.
type TypeInfo struct {
	ID   TypeID
	Name string
}

type registryEntry struct {
	name     string
	describe func(b []byte, limit int) (string, error)
	validate func(b []byte) error
}

// Registry maps type ids to names and describers of versioned wire payloads.
// Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byID   map[TypeID]registryEntry
	byName map[string]TypeID
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[TypeID]registryEntry),
		byName: make(map[string]TypeID),
	}
}

// Register adds the payload type V with trait Tr under id and name.
// Ids and names must be unique.
func Register[V any, Tr param.Traits[V]](r *Registry, id TypeID, name string) error {
	var c codec.Wire[V, Tr]
	e := registryEntry{
		name:     name,
		describe: c.Describe,
		validate: func(b []byte) error { _, err := c.Decode(b); return err },
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: id %d already names %q", ErrDuplicateType, id, prev.name)
	}
	if prev, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: name %q already has id %d", ErrDuplicateType, name, prev)
	}
	r.byID[id] = e
	r.byName[name] = id
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[V any, Tr param.Traits[V]](r *Registry, id TypeID, name string) {
	if err := Register[V, Tr](r, id, name); err != nil {
		panic(err)
	}
}

func (r *Registry) entry(id TypeID) (registryEntry, error) {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return registryEntry{}, fmt.Errorf("%w: %d", ErrUnknownType, id)
	}
	return e, nil
}

// Name returns the registered name of id.
func (r *Registry) Name(id TypeID) (string, bool) {
	e, err := r.entry(id)
	return e.name, err == nil
}

// ID returns the id registered under name.
func (r *Registry) ID(name string) (TypeID, bool) {
	r.mu.RLock()
	id, ok := r.byName[name]
	r.mu.RUnlock()
	return id, ok
}

// Describe decodes payload as type id and renders it with at most limit bytes.
func (r *Registry) Describe(id TypeID, payload []byte, limit int) (string, error) {
	e, err := r.entry(id)
	if err != nil {
		return "", err
	}
	return e.describe(payload, limit)
}

// Validate reports whether payload decodes as type id.
func (r *Registry) Validate(id TypeID, payload []byte) error {
	e, err := r.entry(id)
	if err != nil {
		return err
	}
	return e.validate(payload)
}

// Types lists registrations ordered by id.
func (r *Registry) Types() []TypeInfo {
	r.mu.RLock()
	out := make([]TypeInfo, 0, len(r.byID))
	for id, e := range r.byID {
		out = append(out, TypeInfo{ID: id, Name: e.name})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
