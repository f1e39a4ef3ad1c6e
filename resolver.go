package ioc

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/xraph/go-utils/errs"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// resolution carries the state of one top-level Resolve call.
type resolution struct {
	container *Container
	ctx       context.Context
	chain     *middlewareChain
	path      []reflect.Type // types under construction, used by DetectCycles
}

// resolve runs the full algorithm for t, wrapped in middleware.
func (r *resolution) resolve(t reflect.Type) (reflect.Value, error) {
	if err := r.chain.beforeResolve(r.ctx, t); err != nil {
		return reflect.Value{}, err
	}

	value, err := r.build(t)

	var instance any
	if err == nil {
		instance = value.Interface()
	}

	if mwErr := r.chain.afterResolve(r.ctx, t, instance, err); mwErr != nil {
		return reflect.Value{}, mwErr
	}

	return value, err
}

// build selects a constructor for t and invokes it. Candidates are tried
// richest first; the first one whose parameters can all be produced wins.
func (r *resolution) build(t reflect.Type) (reflect.Value, error) {
	c := r.container

	if c.options.Has(DetectCycles) {
		if err := r.enter(t); err != nil {
			return reflect.Value{}, err
		}
		defer r.leave()
	}

	candidates := c.registry.candidates(t)
	if len(candidates) == 0 {
		return reflect.Value{}, ErrNoPublicConstructor(t)
	}

	var causes error

	for _, ctor := range candidates {
		if len(ctor.params) == 0 {
			return r.invoke(t, ctor, nil)
		}

		args, err := r.arguments(ctor)
		if err != nil {
			return reflect.Value{}, err
		}

		if !args.complete() {
			c.logger.Debug("constructor rejected",
				zap.Stringer("type", t),
				zap.String("constructor", ctor.name),
				zap.Int("satisfied", len(args.values)),
				zap.Int("params", len(ctor.params)),
			)

			causes = multierr.Append(causes, fmt.Errorf("%s: %w", ctor.name, args.reasons()))

			continue
		}

		return r.invoke(t, ctor, args.values)
	}

	return reflect.Value{}, ErrUnresolvableDependency(t, causes)
}

// unsatisfiedError marks a parameter the resolver could not produce. It
// fails the enclosing constructor candidate but not the resolution.
type unsatisfiedError struct {
	param  paramInfo
	reason error
}

func (e *unsatisfiedError) Error() string {
	return fmt.Sprintf("parameter %d (%s): %v", e.param.index, e.param.typ, e.reason)
}

func (e *unsatisfiedError) Unwrap() error {
	return e.reason
}

// argumentSet is the outcome of attempting every parameter of a candidate.
type argumentSet struct {
	values      []reflect.Value
	unsatisfied []error
}

// complete reports whether every parameter was produced.
func (a argumentSet) complete() bool {
	return len(a.unsatisfied) == 0
}

// reasons combines the causes of every unsatisfied parameter.
func (a argumentSet) reasons() error {
	return multierr.Combine(a.unsatisfied...)
}

// arguments attempts every parameter of ctor in declaration order, even after
// one fails. err is non-nil only when resolution must stop altogether.
func (r *resolution) arguments(ctor *constructorInfo) (argumentSet, error) {
	set := argumentSet{values: make([]reflect.Value, 0, len(ctor.params))}

	for _, param := range ctor.params {
		value, err := r.argument(param)
		if unsatisfied, ok := err.(*unsatisfiedError); ok {
			set.unsatisfied = append(set.unsatisfied, unsatisfied)

			continue
		}

		if err != nil {
			return argumentSet{}, err
		}

		set.values = append(set.values, value)
	}

	return set, nil
}

// argument produces the value for a single parameter. An *unsatisfiedError
// leaves the parameter unfilled; any other error aborts the resolution.
func (r *resolution) argument(param paramInfo) (reflect.Value, error) {
	c := r.container

	if c.options.Has(UseDefaultValue) && param.hasDefault {
		return param.defaultValue, nil
	}

	switch param.strategy {
	case FromRegistry:
		impl, ok := c.registry.lookup(param.typ)
		if !ok {
			return reflect.Value{}, &unsatisfiedError{param, ErrMissingRegistration(param.typ)}
		}

		value, err := r.resolve(impl)
		if err != nil {
			if isUnsatisfied(err) {
				return reflect.Value{}, &unsatisfiedError{param, err}
			}

			return reflect.Value{}, err
		}

		return value, nil

	case DefaultConstruct:
		if isPrimitive(param.typ) {
			return reflect.Zero(param.typ), nil
		}

		ctor, ok := c.registry.defaultConstructor(param.typ)
		if !ok {
			return reflect.Value{}, &unsatisfiedError{param, fmt.Errorf("type %s has no zero-parameter constructor", param.typ)}
		}

		return r.invoke(param.typ, ctor, nil)
	}

	return reflect.Value{}, &unsatisfiedError{param, fmt.Errorf("type %s cannot be constructed", param.typ)}
}

// invoke calls ctor and converts constructor failures into errors.
func (r *resolution) invoke(t reflect.Type, ctor *constructorInfo, args []reflect.Value) (reflect.Value, error) {
	value, err := ctor.call(args)
	if err != nil {
		return reflect.Value{}, ErrConstructorFailed(t, ctor.name, err)
	}

	r.container.logger.Debug("constructed",
		zap.Stringer("type", t),
		zap.String("constructor", ctor.name),
	)

	return value, nil
}

// enter pushes t onto the construction path, failing if it is already there.
func (r *resolution) enter(t reflect.Type) error {
	for i, seen := range r.path {
		if seen == t {
			cycle := make([]string, 0, len(r.path)-i+1)
			for _, p := range r.path[i:] {
				cycle = append(cycle, p.String())
			}

			return ErrCircularDependency(append(cycle, t.String()))
		}
	}

	r.path = append(r.path, t)

	return nil
}

func (r *resolution) leave() {
	r.path = r.path[:len(r.path)-1]
}

// isUnsatisfied reports whether a nested resolution failed only because no
// constructor could be satisfied. Any other failure is fatal to the caller.
func isUnsatisfied(err error) bool {
	var e *errs.Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Code == CodeUnresolvableDependency || e.Code == CodeNoPublicConstructor
}
