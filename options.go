package ioc

import (
	"strings"

	"go.uber.org/zap"
)

// ContainerOptions is a set of behavioral flags fixed when a Container is created.
type ContainerOptions uint8

const (
	// None enables no optional behavior (default).
	None ContainerOptions = 0

	// UseDefaultValue satisfies a constructor parameter that declares a
	// default literal with that literal, even when no registration exists.
	UseDefaultValue ContainerOptions = 1 << (iota - 1)

	// DetectCycles guards each resolution with a visited set and fails
	// with a circular dependency error instead of recursing forever.
	DetectCycles
)

var optionNames = []struct {
	flag ContainerOptions
	name string
}{
	{UseDefaultValue, "UseDefaultValue"},
	{DetectCycles, "DetectCycles"},
}

// Has reports whether every flag in flag is set.
func (o ContainerOptions) Has(flag ContainerOptions) bool {
	return o&flag == flag
}

// String renders the set as flag names joined by "|".
func (o ContainerOptions) String() string {
	if o == None {
		return "None"
	}

	var parts []string

	for _, n := range optionNames {
		if o.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseContainerOptions parses flag names separated by "|" or ",".
// Names are case-insensitive; "None" and empty input yield None.
//
// Example:
//
//	opts, err := ioc.ParseContainerOptions("UseDefaultValue|DetectCycles")
func ParseContainerOptions(s string) (ContainerOptions, error) {
	var result ContainerOptions

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ','
	})

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" || strings.EqualFold(field, "None") {
			continue
		}

		matched := false

		for _, n := range optionNames {
			if strings.EqualFold(field, n.name) {
				result |= n.flag
				matched = true

				break
			}
		}

		if !matched {
			return None, ErrInvalidOption(field)
		}
	}

	return result, nil
}

// Option configures a Container at construction time.
type Option func(*config)

type config struct {
	options    ContainerOptions
	logger     *zap.Logger
	middleware []Middleware
}

// WithOptions sets the container's behavioral flags.
func WithOptions(options ContainerOptions) Option {
	return func(c *config) {
		c.options |= options
	}
}

// WithLogger sets the logger used for debug tracing of registrations and
// constructor selection. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMiddleware installs middleware at construction time.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// ConstructorOption configures how a constructor is declared.
type ConstructorOption interface {
	applyConstructor(*constructorConfig)
}

// constructorConfig holds configuration for constructor declaration
type constructorConfig struct {
	defaults map[int]any
}

// constructorOptionFunc is a function adapter for ConstructorOption
type constructorOptionFunc func(*constructorConfig)

func (f constructorOptionFunc) applyConstructor(c *constructorConfig) { f(c) }

// WithDefault declares a default literal for the parameter at index.
// The literal is used only by containers created with UseDefaultValue
// and is coerced to the parameter's type when the constructor is declared.
//
// Example:
//
//	c.Declare(NewCharger, ioc.WithDefault(0, 220))
func WithDefault(index int, value any) ConstructorOption {
	return constructorOptionFunc(func(c *constructorConfig) {
		if c.defaults == nil {
			c.defaults = make(map[int]any)
		}
		c.defaults[index] = value
	})
}
