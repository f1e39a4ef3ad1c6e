package ioc

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_BeforeAfterResolve(t *testing.T) {
	c := newLaptopContainer(t)

	// Track middleware calls
	var calls []string

	mw := &FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
			calls = append(calls, "before:"+t.String())
			return nil
		},
		AfterResolveFunc: func(ctx context.Context, t reflect.Type, instance any, err error) error {
			calls = append(calls, "after:"+t.String())
			return nil
		},
	}

	c.Use(mw)

	_, err := Resolve[*testLaptop](c)
	require.NoError(t, err)

	// Registered implementations are resolved through the full algorithm
	assert.Equal(t, []string{
		"before:*ioc.testLaptop",
		"before:*ioc.testBattery",
		"after:*ioc.testBattery",
		"after:*ioc.testLaptop",
	}, calls)
}

func TestMiddleware_NotCalledForDefaultConstructedParams(t *testing.T) {
	type service struct{ logger *testLogger }

	c := New()
	require.NoError(t, c.Declare(newTestLogger))
	require.NoError(t, c.Declare(func(l *testLogger) *service { return &service{logger: l} }))

	var resolved []reflect.Type

	c.Use(&FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
			resolved = append(resolved, t)
			return nil
		},
	})

	_, err := Resolve[*service](c)
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{reflect.TypeOf(&service{})}, resolved)
}

func TestMiddleware_BeforeResolveError(t *testing.T) {
	c := newLaptopContainer(t)

	expectedErr := errors.New("access denied")

	c.Use(&FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
			if t == reflect.TypeOf(&testBattery{}) {
				return expectedErr
			}
			return nil
		},
	})
	require.NoError(t, c.Declare(newTestLaptopBare))

	// A middleware error is not a satisfiability failure: no fallback
	_, err := Resolve[*testLaptop](c)
	assert.ErrorIs(t, err, expectedErr)
}

func TestMiddleware_AfterResolveSeesError(t *testing.T) {
	c := New()
	require.NoError(t, c.Declare(newTestLaptop))

	var seen error
	var instance any = "unset"

	c.Use(&FuncMiddleware{
		AfterResolveFunc: func(ctx context.Context, t reflect.Type, i any, err error) error {
			seen = err
			instance = i
			return nil
		},
	})

	_, err := Resolve[*testLaptop](c)
	require.Error(t, err)
	assert.ErrorIs(t, seen, ErrUnresolvableDependencySentinel)
	assert.Nil(t, instance)
}

func TestMiddleware_AfterResolveError(t *testing.T) {
	c := newLaptopContainer(t)

	expectedErr := errors.New("rejected")

	c.Use(&FuncMiddleware{
		AfterResolveFunc: func(ctx context.Context, t reflect.Type, instance any, err error) error {
			return expectedErr
		},
	})

	laptop, err := Resolve[*testLaptop](c)
	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, laptop)
}

func TestMiddleware_ReceivesContext(t *testing.T) {
	type key struct{}

	c := newLaptopContainer(t)

	var got any

	c.Use(&FuncMiddleware{
		BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
			got = ctx.Value(key{})
			return nil
		},
	})

	ctx := context.WithValue(context.Background(), key{}, "request-1")

	_, err := ResolveContext[*testLaptop](ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "request-1", got)
}

func TestMiddleware_Order(t *testing.T) {
	c := New()
	require.NoError(t, c.Declare(newTestLogger))

	var order []int

	for i := 1; i <= 3; i++ {
		c.Use(&FuncMiddleware{
			BeforeResolveFunc: func(ctx context.Context, t reflect.Type) error {
				order = append(order, i)
				return nil
			},
		})
	}

	_, err := Resolve[*testLogger](c)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestFuncMiddleware_NilFuncs(t *testing.T) {
	mw := &FuncMiddleware{}

	assert.NoError(t, mw.BeforeResolve(context.Background(), reflect.TypeOf(0)))
	assert.NoError(t, mw.AfterResolve(context.Background(), reflect.TypeOf(0), nil, nil))
}
