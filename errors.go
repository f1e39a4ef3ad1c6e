package ioc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeNoPublicConstructor indicates the target type has no declared constructor
	CodeNoPublicConstructor = "NO_PUBLIC_CONSTRUCTOR"

	// CodeDuplicateRegistration indicates a capability is already registered
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"

	// CodeUnresolvableDependency indicates no constructor candidate could be satisfied
	CodeUnresolvableDependency = "UNRESOLVABLE_DEPENDENCY"

	// CodeMissingRegistration indicates a registry lookup miss for a capability
	CodeMissingRegistration = "MISSING_REGISTRATION"

	// CodeInvalidRegistration indicates a capability/implementation pair is not usable
	CodeInvalidRegistration = "INVALID_REGISTRATION"

	// CodeInvalidConstructor indicates a declared constructor is malformed
	CodeInvalidConstructor = "INVALID_CONSTRUCTOR"

	// CodeConstructorFailed indicates a constructor returned an error or panicked
	CodeConstructorFailed = "CONSTRUCTOR_FAILED"

	// CodeCircularDependency indicates a circular dependency was detected
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeTypeMismatch indicates a resolved value does not have the requested type
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeInvalidOption indicates an unknown container option name
	CodeInvalidOption = "INVALID_OPTION"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// Sentinels match any error carrying the same code through errors.Is.
var (
	ErrNoPublicConstructorSentinel    = errs.NewError(CodeNoPublicConstructor, "no public constructor", nil)
	ErrDuplicateRegistrationSentinel  = errs.NewError(CodeDuplicateRegistration, "duplicate registration", nil)
	ErrUnresolvableDependencySentinel = errs.NewError(CodeUnresolvableDependency, "unresolvable dependency", nil)
	ErrMissingRegistrationSentinel    = errs.NewError(CodeMissingRegistration, "missing registration", nil)
	ErrInvalidRegistrationSentinel    = errs.NewError(CodeInvalidRegistration, "invalid registration", nil)
	ErrInvalidConstructorSentinel     = errs.NewError(CodeInvalidConstructor, "invalid constructor", nil)
	ErrConstructorFailedSentinel      = errs.NewError(CodeConstructorFailed, "constructor failed", nil)
	ErrCircularDependencySentinel     = errs.NewError(CodeCircularDependency, "circular dependency", nil)
	ErrTypeMismatchSentinel           = errs.NewError(CodeTypeMismatch, "type mismatch", nil)
	ErrInvalidOptionSentinel          = errs.NewError(CodeInvalidOption, "invalid option", nil)
)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrNoPublicConstructor creates an error for a type without declared constructors.
func ErrNoPublicConstructor(t reflect.Type) *errs.Error {
	return errs.NewError(
		CodeNoPublicConstructor,
		fmt.Sprintf("type '%s' does not have any public constructors", typeName(t)),
		nil,
	).WithContext("type", typeName(t)).(*errs.Error)
}

// ErrDuplicateRegistration creates an error for a capability registered twice.
func ErrDuplicateRegistration(capability, existing reflect.Type) *errs.Error {
	return errs.NewError(
		CodeDuplicateRegistration,
		fmt.Sprintf("capability '%s' is already registered to '%s'", typeName(capability), typeName(existing)),
		nil,
	).WithContext("capability", typeName(capability)).
		WithContext("implementation", typeName(existing)).(*errs.Error)
}

// ErrUnresolvableDependency creates an error for a type none of whose
// constructors could be satisfied. cause carries the per-candidate reasons.
func ErrUnresolvableDependency(t reflect.Type, cause error) *errs.Error {
	return errs.NewError(
		CodeUnresolvableDependency,
		fmt.Sprintf("could not resolve the dependency '%s'", typeName(t)),
		cause,
	).WithContext("type", typeName(t)).(*errs.Error)
}

// ErrMissingRegistration creates an error for a capability absent from the table.
func ErrMissingRegistration(capability reflect.Type) *errs.Error {
	return errs.NewError(
		CodeMissingRegistration,
		fmt.Sprintf("no implementation registered for capability '%s'", typeName(capability)),
		nil,
	).WithContext("capability", typeName(capability)).(*errs.Error)
}

// ErrInvalidRegistration creates an error for an unusable registration pair.
func ErrInvalidRegistration(capability, implementation reflect.Type, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidRegistration,
		fmt.Sprintf("cannot register '%s' as '%s': %s", typeName(implementation), typeName(capability), reason),
		nil,
	).WithContext("capability", typeName(capability)).
		WithContext("implementation", typeName(implementation)).(*errs.Error)
}

// ErrInvalidConstructor creates an error for a malformed constructor declaration.
func ErrInvalidConstructor(fn string, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidConstructor,
		fmt.Sprintf("invalid constructor %s: %s", fn, reason),
		nil,
	).WithContext("constructor", fn).(*errs.Error)
}

// ErrConstructorFailed creates an error for a constructor that returned an error.
func ErrConstructorFailed(t reflect.Type, fn string, cause error) *errs.Error {
	return errs.NewError(
		CodeConstructorFailed,
		fmt.Sprintf("constructor %s for '%s' failed", fn, typeName(t)),
		cause,
	).WithContext("type", typeName(t)).
		WithContext("constructor", fn).(*errs.Error)
}

// ErrCircularDependency creates an error for circular dependency detection
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		"circular dependency detected: "+strings.Join(cycle, " -> "),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrTypeMismatch creates an error for a resolved value of the wrong type.
func ErrTypeMismatch(expected reflect.Type, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("expected '%s', got %T", typeName(expected), actual),
		nil,
	).WithContext("type", typeName(expected)).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrInvalidOption creates an error for an unknown container option name.
func ErrInvalidOption(name string) *errs.Error {
	return errs.NewError(
		CodeInvalidOption,
		fmt.Sprintf("unknown container option %q", name),
		nil,
	).WithContext("option", name).(*errs.Error)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
