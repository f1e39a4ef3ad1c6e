package ioc

import (
	"reflect"
	"sort"
)

// TypeInfo describes the public constructors of a type, in the order the
// resolver tries them.
type TypeInfo struct {
	Type         reflect.Type
	Constructors []ConstructorInfo
}

// ConstructorInfo describes one declared constructor.
type ConstructorInfo struct {
	Name         string
	Params       []ParamInfo
	ReturnsError bool
}

// ParamInfo describes one constructor parameter. Strategy is the one the
// container will apply, so a parameter with a default reports
// FromDefaultLiteral only when the container uses default values.
type ParamInfo struct {
	Index      int
	Type       reflect.Type
	Strategy   Strategy
	HasDefault bool
	Default    any
}

// Binding is a capability/implementation pair.
type Binding struct {
	Capability     reflect.Type
	Implementation reflect.Type
}

// Inspect returns diagnostic information about t's declared constructors.
func (c *Container) Inspect(t reflect.Type) TypeInfo {
	info := TypeInfo{Type: t}

	for _, ctor := range c.registry.candidates(t) {
		ci := ConstructorInfo{
			Name:         ctor.name,
			ReturnsError: ctor.hasError,
			Params:       make([]ParamInfo, 0, len(ctor.params)),
		}

		for _, p := range ctor.params {
			pi := ParamInfo{
				Index:      p.index,
				Type:       p.typ,
				Strategy:   p.strategy,
				HasDefault: p.hasDefault,
			}

			if p.hasDefault {
				pi.Default = p.defaultValue.Interface()
				if c.options.Has(UseDefaultValue) {
					pi.Strategy = FromDefaultLiteral
				}
			}

			ci.Params = append(ci.Params, pi)
		}

		info.Constructors = append(info.Constructors, ci)
	}

	return info
}

// Describe returns diagnostic information about T.
func Describe[T any](c *Container) TypeInfo {
	return c.Inspect(typeOf[T]())
}

// Bindings returns every registration, sorted by capability name.
func (c *Container) Bindings() []Binding {
	bindings, _ := c.registry.snapshot()

	return sortedBindings(bindings)
}

func sortedBindings(bindings map[reflect.Type]reflect.Type) []Binding {
	out := make([]Binding, 0, len(bindings))
	for capability, impl := range bindings {
		out = append(out, Binding{Capability: capability, Implementation: impl})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Capability.String() < out[j].Capability.String()
	})

	return out
}

// Types returns every type with at least one declared constructor, sorted by name.
func (c *Container) Types() []reflect.Type {
	_, constructors := c.registry.snapshot()

	return sortedTypes(constructors)
}

func sortedTypes(constructors map[reflect.Type][]*constructorInfo) []reflect.Type {
	out := make([]reflect.Type, 0, len(constructors))
	for t := range constructors {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})

	return out
}
