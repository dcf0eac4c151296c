package codegen

import "sync"

// Access is the direction a property view allows
type Access int

const (
	AccessReadWrite Access = iota
	AccessRead
	AccessWrite
)

// String returns the docblock tag suffix for the access mode
func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "read-write"
	}
}

// Property is the inferred annotation for one column of a model
type Property struct {
	Name     string
	Get      TypeExpr
	Set      TypeExpr
	Nullable bool
	Comment  string
	Accessor *AccessorSignature
}

// Split reports whether reads and writes have different types
func (p Property) Split() bool {
	return !p.Get.Equal(p.Set)
}

// PropertyView is one declared direction of a property
type PropertyView struct {
	Name     string
	Type     TypeExpr
	Access   Access
	Nullable bool
	Comment  string
}

// Views returns a single read/write view when get and set agree, otherwise a
// read-only view followed by a write-only view over the same name.
func (p Property) Views() []PropertyView {
	if !p.Split() {
		return []PropertyView{
			{Name: p.Name, Type: p.Get, Access: AccessReadWrite, Nullable: p.Nullable, Comment: p.Comment},
		}
	}
	return []PropertyView{
		{Name: p.Name, Type: p.Get, Access: AccessRead, Nullable: p.Nullable, Comment: p.Comment},
		{Name: p.Name, Type: p.Set, Access: AccessWrite, Nullable: p.Nullable, Comment: p.Comment},
	}
}

type modelEntry struct {
	mu    sync.Mutex
	order []string
	props map[string]Property
}

// PropertyRegistry accumulates inferred properties per model.
// Each model has its own lock so models can be recorded concurrently.
type PropertyRegistry struct {
	mu        sync.RWMutex
	models    map[string]*modelEntry
	processed []string
	seen      map[string]struct{}
}

// NewPropertyRegistry creates an empty registry
func NewPropertyRegistry() *PropertyRegistry {
	return &PropertyRegistry{
		models: make(map[string]*modelEntry),
		seen:   make(map[string]struct{}),
	}
}

func (r *PropertyRegistry) entry(model string, create bool) *modelEntry {
	r.mu.RLock()
	e, ok := r.models[model]
	r.mu.RUnlock()
	if ok || !create {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.models[model]; !ok {
		e = &modelEntry{props: make(map[string]Property)}
		r.models[model] = e
	}
	return e
}

// RecordColumn stores a property. Recording the same name again replaces the
// earlier property but keeps its original position.
func (r *PropertyRegistry) RecordColumn(model string, prop Property) {
	e := r.entry(model, true)

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.props[prop.Name]; !exists {
		e.order = append(e.order, prop.Name)
	}
	e.props[prop.Name] = prop
}

// Properties returns the model's properties in source column order
func (r *PropertyRegistry) Properties(model string) []Property {
	e := r.entry(model, false)
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Property, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.props[name])
	}
	return out
}

// Property returns a single property by name
func (r *PropertyRegistry) Property(model, name string) (Property, bool) {
	e := r.entry(model, false)
	if e == nil {
		return Property{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.props[name]
	return p, ok
}

// Nullable returns the names of the model's nullable properties in column order
func (r *PropertyRegistry) Nullable(model string) []string {
	var names []string
	for _, p := range r.Properties(model) {
		if p.Nullable {
			names = append(names, p.Name)
		}
	}
	return names
}

// IsNullable reports whether the named property was recorded as nullable
func (r *PropertyRegistry) IsNullable(model, name string) bool {
	p, ok := r.Property(model, name)
	return ok && p.Nullable
}

// MarkProcessed records that the model had a resolvable schema
func (r *PropertyRegistry) MarkProcessed(model string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[model]; ok {
		return
	}
	r.seen[model] = struct{}{}
	r.processed = append(r.processed, model)
}

// ProcessedModels returns processed models in the order they were marked
func (r *PropertyRegistry) ProcessedModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.processed...)
}
