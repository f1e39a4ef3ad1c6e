package ioc

// Bind creates a Binding for batch registration.
//
// Example:
//
//	err := ioc.RegisterAll(c,
//	    ioc.Bind[PowerSource, *Battery](),
//	    ioc.Bind[Display, *Panel](),
//	)
func Bind[Capability, Implementation any]() Binding {
	return Binding{
		Capability:     typeOf[Capability](),
		Implementation: typeOf[Implementation](),
	}
}

// RegisterAll registers multiple bindings in a single call.
// It stops at the first failure; bindings before it stay registered.
func RegisterAll(c *Container, bindings ...Binding) error {
	for _, b := range bindings {
		if err := c.Register(b.Capability, b.Implementation); err != nil {
			return err
		}
	}
	return nil
}

// DeclareAll declares multiple constructors in a single call.
// It stops at the first invalid constructor.
//
// Example:
//
//	err := ioc.DeclareAll(c, NewBattery, NewLaptop)
func DeclareAll(c *Container, constructors ...any) error {
	for _, ctor := range constructors {
		if err := c.Declare(ctor); err != nil {
			return err
		}
	}
	return nil
}
