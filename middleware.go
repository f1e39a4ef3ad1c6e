package ioc

import (
	"context"
	"reflect"
)

// Middleware provides hooks around every full resolution of a type: the
// top-level target and each registered implementation resolved for an
// interface parameter. Middleware can be used for logging, metrics,
// testing, etc.
type Middleware interface {
	// BeforeResolve is called before resolving a type.
	// Return error to abort resolution.
	BeforeResolve(ctx context.Context, t reflect.Type) error

	// AfterResolve is called after resolving a type.
	// Called even if resolution failed (instance is nil then).
	AfterResolve(ctx context.Context, t reflect.Type, instance any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain(middleware ...Middleware) *middlewareChain {
	return &middlewareChain{
		middleware: append(make([]Middleware, 0, len(middleware)), middleware...),
	}
}

// add returns a chain with middleware appended. Chains are never mutated
// in place so an in-flight resolution keeps the chain it started with.
func (m *middlewareChain) add(middleware Middleware) *middlewareChain {
	next := make([]Middleware, len(m.middleware), len(m.middleware)+1)
	copy(next, m.middleware)

	return &middlewareChain{middleware: append(next, middleware)}
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(ctx context.Context, t reflect.Type) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(ctx context.Context, t reflect.Type, instance any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, t, instance, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, t reflect.Type) error
	AfterResolveFunc  func(ctx context.Context, t reflect.Type, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, t reflect.Type) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(ctx, t)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, t reflect.Type, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, t, instance, err)
	}
	return nil
}
