package ioc

import (
	"fmt"
	"math"
	"reflect"
	"runtime"

	"github.com/go-viper/mapstructure/v2"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Strategy describes how the resolver produces a constructor argument.
type Strategy int

const (
	// Unresolvable parameters can never be produced by the container.
	Unresolvable Strategy = iota

	// FromRegistry parameters are interfaces looked up in the registration
	// table and resolved through their registered implementation.
	FromRegistry

	// DefaultConstruct parameters are primitives (zero value) or concrete
	// types built through their zero-parameter constructor.
	DefaultConstruct

	// FromDefaultLiteral parameters are satisfied by their declared default.
	FromDefaultLiteral
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case FromRegistry:
		return "FromRegistry"
	case DefaultConstruct:
		return "DefaultConstruct"
	case FromDefaultLiteral:
		return "FromDefaultLiteral"
	default:
		return "Unresolvable"
	}
}

// constructorInfo holds analyzed constructor metadata
type constructorInfo struct {
	fn       reflect.Value
	name     string
	result   reflect.Type
	params   []paramInfo
	hasError bool
}

// paramInfo describes a constructor parameter. strategy is derived from the
// parameter's kind alone; a declared default takes precedence over it only
// when the container uses default values.
type paramInfo struct {
	index        int
	typ          reflect.Type
	strategy     Strategy
	hasDefault   bool
	defaultValue reflect.Value
}

// analyzeConstructor inspects a constructor function and extracts its result
// type and parameter strategies.
func analyzeConstructor(constructor any, cfg *constructorConfig) (*constructorInfo, error) {
	if constructor == nil {
		return nil, ErrInvalidConstructor("<nil>", "constructor cannot be nil")
	}

	fnValue := reflect.ValueOf(constructor)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, ErrInvalidConstructor(fnType.String(), "constructor must be a function")
	}

	if fnValue.IsNil() {
		return nil, ErrInvalidConstructor(fnType.String(), "constructor cannot be nil")
	}

	name := funcName(fnValue)

	if fnType.IsVariadic() {
		return nil, ErrInvalidConstructor(name, "variadic constructors are not supported")
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, ErrInvalidConstructor(name, "second return value must be error")
		}
	default:
		return nil, ErrInvalidConstructor(name, "constructor must return one value and an optional error")
	}

	result := fnType.Out(0)
	if result.Kind() == reflect.Interface {
		return nil, ErrInvalidConstructor(name, fmt.Sprintf("result type %s is an interface", result))
	}

	info := &constructorInfo{
		fn:       fnValue,
		name:     name,
		result:   result,
		hasError: fnType.NumOut() == 2,
	}

	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)
		info.params = append(info.params, paramInfo{
			index:    i,
			typ:      paramType,
			strategy: classify(paramType),
		})
	}

	for index, value := range cfg.defaults {
		if index < 0 || index >= len(info.params) {
			return nil, ErrInvalidConstructor(name, fmt.Sprintf("default for parameter %d out of range", index))
		}

		coerced, err := coerce(value, info.params[index].typ)
		if err != nil {
			return nil, ErrInvalidConstructor(name, fmt.Sprintf("default for parameter %d: %v", index, err))
		}

		info.params[index].hasDefault = true
		info.params[index].defaultValue = coerced
	}

	return info, nil
}

// classify picks the kind-based strategy for a parameter type.
func classify(t reflect.Type) Strategy {
	switch {
	case t.Kind() == reflect.Interface:
		return FromRegistry
	case isPrimitive(t):
		return DefaultConstruct
	}

	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return Unresolvable
	}

	return DefaultConstruct
}

// isPrimitive reports whether t is a language value type with a usable zero value.
func isPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	}

	return false
}

func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}

	return false
}

// coerce converts a default literal to t. Assignable values pass through
// unchanged; anything else goes through weakly typed decoding, so "42"
// becomes 42 and 1 becomes true.
func coerce(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		if !isNilable(t) {
			return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
		}

		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		out := reflect.New(t).Elem()
		out.Set(v)

		return out, nil
	}

	if err := checkRange(v, t); err != nil {
		return reflect.Value{}, err
	}

	out := reflect.New(t)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out.Interface(),
	})
	if err != nil {
		return reflect.Value{}, err
	}

	if err := decoder.Decode(value); err != nil {
		return reflect.Value{}, fmt.Errorf("cannot convert %T to %s: %w", value, t, err)
	}

	return out.Elem(), nil
}

// checkRange rejects numeric literals that do not fit t. Weakly typed
// decoding would otherwise wrap them silently.
func checkRange(v reflect.Value, t reflect.Type) error {
	zero := reflect.Zero(t)
	overflow := false

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			overflow = zero.OverflowInt(v.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			overflow = v.Uint() > math.MaxInt64 || zero.OverflowInt(int64(v.Uint()))
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			overflow = f < math.MinInt64 || f >= math.MaxInt64 || zero.OverflowInt(int64(f))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			overflow = v.Int() < 0 || zero.OverflowUint(uint64(v.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			overflow = zero.OverflowUint(v.Uint())
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			overflow = f < 0 || f >= math.MaxUint64 || zero.OverflowUint(uint64(f))
		}

	case reflect.Float32, reflect.Float64:
		switch v.Kind() {
		case reflect.Float32, reflect.Float64:
			overflow = zero.OverflowFloat(v.Float())
		}
	}

	if overflow {
		return fmt.Errorf("%v overflows %s", v.Interface(), t)
	}

	return nil
}

// call invokes the constructor. A returned error or a panic is reported as err.
func (ci *constructorInfo) call(args []reflect.Value) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	results := ci.fn.Call(args)

	if ci.hasError {
		if errResult := results[1]; !errResult.IsNil() {
			return reflect.Value{}, errResult.Interface().(error)
		}
	}

	return results[0], nil
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}

	return fn.Type().String()
}
