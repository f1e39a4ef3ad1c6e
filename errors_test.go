package ioc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/go-utils/errs"
	"go.uber.org/multierr"
)

func TestErrors_MatchSentinelsByCode(t *testing.T) {
	battery := reflect.TypeOf(&testBattery{})
	source := typeOf[testPowerSource]()

	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
	}{
		{"no public constructor", ErrNoPublicConstructor(battery), ErrNoPublicConstructorSentinel, CodeNoPublicConstructor},
		{"duplicate registration", ErrDuplicateRegistration(source, battery), ErrDuplicateRegistrationSentinel, CodeDuplicateRegistration},
		{"unresolvable dependency", ErrUnresolvableDependency(battery, nil), ErrUnresolvableDependencySentinel, CodeUnresolvableDependency},
		{"missing registration", ErrMissingRegistration(source), ErrMissingRegistrationSentinel, CodeMissingRegistration},
		{"invalid registration", ErrInvalidRegistration(source, battery, "reason"), ErrInvalidRegistrationSentinel, CodeInvalidRegistration},
		{"invalid constructor", ErrInvalidConstructor("fn", "reason"), ErrInvalidConstructorSentinel, CodeInvalidConstructor},
		{"constructor failed", ErrConstructorFailed(battery, "fn", errors.New("x")), ErrConstructorFailedSentinel, CodeConstructorFailed},
		{"circular dependency", ErrCircularDependency([]string{"a", "a"}), ErrCircularDependencySentinel, CodeCircularDependency},
		{"type mismatch", ErrTypeMismatch(battery, 1), ErrTypeMismatchSentinel, CodeTypeMismatch},
		{"invalid option", ErrInvalidOption("Singleton"), ErrInvalidOptionSentinel, CodeInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)

			var e *errs.Error
			require.ErrorAs(t, tt.err, &e)
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestErrors_Context(t *testing.T) {
	battery := reflect.TypeOf(&testBattery{})
	source := typeOf[testPowerSource]()

	dup := ErrDuplicateRegistration(source, battery)
	assert.Equal(t, "ioc.testPowerSource", dup.GetContext()["capability"])
	assert.Equal(t, "*ioc.testBattery", dup.GetContext()["implementation"])

	failed := ErrConstructorFailed(battery, "newBattery", errors.New("x"))
	assert.Equal(t, "*ioc.testBattery", failed.GetContext()["type"])
	assert.Equal(t, "newBattery", failed.GetContext()["constructor"])

	mismatch := ErrTypeMismatch(battery, "text")
	assert.Equal(t, "string", mismatch.GetContext()["actual_type"])

	assert.Equal(t, "<nil>", ErrNoPublicConstructor(nil).GetContext()["type"])
}

func TestErrors_CauseChain(t *testing.T) {
	missing := ErrMissingRegistration(typeOf[testPowerSource]())
	other := errors.New("other")

	err := ErrUnresolvableDependency(reflect.TypeOf(&testLaptop{}), multierr.Append(missing, other))

	assert.ErrorIs(t, err, ErrUnresolvableDependencySentinel)
	assert.ErrorIs(t, err, ErrMissingRegistrationSentinel)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, ErrConstructorFailedSentinel)
}

func TestIsUnsatisfied(t *testing.T) {
	battery := reflect.TypeOf(&testBattery{})

	assert.True(t, isUnsatisfied(ErrUnresolvableDependency(battery, nil)))
	assert.True(t, isUnsatisfied(ErrNoPublicConstructor(battery)))
	assert.False(t, isUnsatisfied(ErrConstructorFailed(battery, "fn", errors.New("x"))))
	assert.False(t, isUnsatisfied(ErrCircularDependency([]string{"a", "a"})))
	assert.False(t, isUnsatisfied(errors.New("plain")))
}

func TestResolve_UnresolvableCauseNamesParameter(t *testing.T) {
	c := New()
	require.NoError(t, DeclareAll(c, newTestLaptop, newTestLaptopWithLogger))

	_, err := Resolve[*testLaptop](c)
	require.ErrorIs(t, err, ErrUnresolvableDependencySentinel)
	assert.ErrorIs(t, err, ErrMissingRegistrationSentinel)

	var unsatisfied *unsatisfiedError
	require.ErrorAs(t, err, &unsatisfied)
	assert.Equal(t, typeOf[testPowerSource](), unsatisfied.param.typ)
}
