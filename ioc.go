// Package ioc provides a minimal dependency-injection container.
//
// A Container maps capability types (interfaces) to implementation types and
// builds object graphs on demand. Go types have no constructors of their own,
// so each resolvable type declares its constructors as plain functions:
//
//	c := ioc.New()
//	_ = ioc.Register[PowerSource, *Battery](c)
//	_ = c.Declare(NewBattery)
//	_ = c.Declare(NewLaptop) // func NewLaptop(src PowerSource) *Laptop
//
//	laptop, err := ioc.Resolve[*Laptop](c)
//
// Resolution prefers the constructor with the most parameters whose complete
// parameter list can be satisfied and falls back to simpler constructors.
// Nothing is cached: every call builds a fresh graph owned by the caller.
package ioc

import (
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Container owns the registration table, the constructor catalogue and the
// resolution algorithm. It is safe for concurrent use; resolution that runs
// concurrently with Register or Declare observes either the old or the new
// table with no ordering guarantee.
type Container struct {
	options    ContainerOptions
	registry   *registry
	middleware *middlewareChain
	logger     *zap.Logger
	mu         sync.RWMutex // guards middleware
}

// New creates a new container. Without options no flags are set.
func New(opts ...Option) *Container {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Container{
		options:    cfg.options,
		registry:   newRegistry(),
		middleware: newMiddlewareChain(cfg.middleware...),
		logger:     cfg.logger.Named("ioc"),
	}
}

// Options returns the flags the container was created with.
func (c *Container) Options() ContainerOptions {
	return c.options
}

// Register maps capability to implementation. capability must be an
// interface; implementation must be a non-interface, non-primitive type
// implementing it. Registering a capability twice fails and leaves the table
// unchanged.
func (c *Container) Register(capability, implementation reflect.Type) error {
	if capability == nil || implementation == nil {
		return ErrInvalidRegistration(capability, implementation, "types cannot be nil")
	}

	if capability.Kind() != reflect.Interface {
		return ErrInvalidRegistration(capability, implementation, "capability must be an interface")
	}

	if implementation.Kind() == reflect.Interface {
		return ErrInvalidRegistration(capability, implementation, "implementation must be a concrete type")
	}

	if isPrimitive(implementation) {
		return ErrInvalidRegistration(capability, implementation, "implementation cannot be a primitive type")
	}

	if !implementation.Implements(capability) {
		return ErrInvalidRegistration(capability, implementation, "implementation does not implement capability")
	}

	if err := c.registry.register(capability, implementation); err != nil {
		return err
	}

	c.logger.Debug("registered capability",
		zap.Stringer("capability", capability),
		zap.Stringer("implementation", implementation),
	)

	return nil
}

// Declare adds constructor to the public constructors of its result type.
// constructor must be a non-variadic function returning one non-interface
// value, optionally followed by an error.
func (c *Container) Declare(constructor any, opts ...ConstructorOption) error {
	cfg := &constructorConfig{}
	for _, opt := range opts {
		opt.applyConstructor(cfg)
	}

	info, err := analyzeConstructor(constructor, cfg)
	if err != nil {
		return err
	}

	c.registry.declare(info)

	c.logger.Debug("declared constructor",
		zap.Stringer("type", info.result),
		zap.String("constructor", info.name),
		zap.Int("params", len(info.params)),
	)

	return nil
}

// Has reports whether capability is registered.
func (c *Container) Has(capability reflect.Type) bool {
	_, ok := c.registry.lookup(capability)

	return ok
}

// Use adds middleware to the container.
// Middleware is called in the order they are added.
func (c *Container) Use(middleware Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = c.middleware.add(middleware)
}

// Resolve builds a fresh instance of target.
func (c *Container) Resolve(target reflect.Type) (any, error) {
	return c.ResolveContext(context.Background(), target)
}

// ResolveContext builds a fresh instance of target. ctx is passed to
// middleware; resolution itself does not observe cancellation.
func (c *Container) ResolveContext(ctx context.Context, target reflect.Type) (any, error) {
	if target == nil {
		return nil, ErrNoPublicConstructor(nil)
	}

	c.mu.RLock()
	chain := c.middleware
	c.mu.RUnlock()

	r := &resolution{
		container: c,
		ctx:       ctx,
		chain:     chain,
	}

	value, err := r.resolve(target)
	if err != nil {
		return nil, err
	}

	return value.Interface(), nil
}
