package ioc

import (
	"context"
	"fmt"
	"reflect"
)

// typeOf returns the reflect.Type of T, including interface types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register maps the Capability interface to the Implementation type.
//
// Example:
//
//	err := ioc.Register[PowerSource, *Battery](c)
func Register[Capability, Implementation any](c *Container) error {
	return c.Register(typeOf[Capability](), typeOf[Implementation]())
}

// Resolve with type safety.
func Resolve[T any](c *Container) (T, error) {
	return ResolveContext[T](context.Background(), c)
}

// ResolveContext resolves T, passing ctx to middleware.
func ResolveContext[T any](ctx context.Context, c *Container) (T, error) {
	var zero T

	t := typeOf[T]()

	instance, err := c.ResolveContext(ctx, t)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(t, instance)
	}

	return typed, nil
}

// MustResolve resolves or panics - use only during startup.
func MustResolve[T any](c *Container) T {
	instance, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", typeOf[T](), err))
	}

	return instance
}

// HasRegistration checks if the Capability interface is registered.
func HasRegistration[Capability any](c *Container) bool {
	return c.Has(typeOf[Capability]())
}
