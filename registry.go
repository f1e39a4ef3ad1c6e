package ioc

import (
	"reflect"
	"sort"
	"sync"
)

// registry owns the registration table (capability -> implementation) and
// the constructor catalogue (type -> declared constructors). Constructor
// lists are kept sorted by parameter count, descending, with ties in
// declaration order, so resolution never sorts.
type registry struct {
	bindings     map[reflect.Type]reflect.Type
	constructors map[reflect.Type][]*constructorInfo
	mu           sync.RWMutex
}

// newRegistry creates an empty registry
func newRegistry() *registry {
	return &registry{
		bindings:     make(map[reflect.Type]reflect.Type),
		constructors: make(map[reflect.Type][]*constructorInfo),
	}
}

// register inserts a capability binding. The table is left unchanged when
// the capability already exists.
func (r *registry) register(capability, implementation reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.bindings[capability]; exists {
		return ErrDuplicateRegistration(capability, existing)
	}

	r.bindings[capability] = implementation

	return nil
}

// lookup returns the implementation registered for capability
func (r *registry) lookup(capability reflect.Type) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	impl, ok := r.bindings[capability]

	return impl, ok
}

// declare adds a constructor candidate for its result type
func (r *registry) declare(info *constructorInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctors := append(r.constructors[info.result], info)
	sort.SliceStable(ctors, func(i, j int) bool {
		return len(ctors[i].params) > len(ctors[j].params)
	})

	r.constructors[info.result] = ctors
}

// candidates returns a snapshot of t's constructors in resolution order
func (r *registry) candidates(t reflect.Type) []*constructorInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctors := r.constructors[t]
	if len(ctors) == 0 {
		return nil
	}

	out := make([]*constructorInfo, len(ctors))
	copy(out, ctors)

	return out
}

// defaultConstructor returns t's first declared zero-parameter constructor
func (r *registry) defaultConstructor(t reflect.Type) (*constructorInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ctor := range r.constructors[t] {
		if len(ctor.params) == 0 {
			return ctor, true
		}
	}

	return nil, false
}

// snapshot copies both tables for inspection and graph building
func (r *registry) snapshot() (map[reflect.Type]reflect.Type, map[reflect.Type][]*constructorInfo) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bindings := make(map[reflect.Type]reflect.Type, len(r.bindings))
	for k, v := range r.bindings {
		bindings[k] = v
	}

	constructors := make(map[reflect.Type][]*constructorInfo, len(r.constructors))
	for k, v := range r.constructors {
		constructors[k] = append([]*constructorInfo(nil), v...)
	}

	return bindings, constructors
}
