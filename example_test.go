package ioc_test

import (
	"fmt"

	"github.com/xraph/ioc"
)

type PowerSource interface {
	GetPower() int
}

type Battery struct{}

func NewBattery() *Battery { return &Battery{} }

func (*Battery) GetPower() int { return -1 }

type Generator struct{ output int }

func NewGenerator(output int) *Generator { return &Generator{output: output} }

func (g *Generator) GetPower() int { return g.output }

type Laptop struct{ source PowerSource }

func NewLaptop(source PowerSource) *Laptop { return &Laptop{source: source} }

func (l *Laptop) Power() int { return l.source.GetPower() }

func ExampleResolve() {
	c := ioc.New()

	_ = ioc.Register[PowerSource, *Battery](c)
	_ = ioc.DeclareAll(c, NewBattery, NewLaptop)

	laptop, err := ioc.Resolve[*Laptop](c)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(laptop.Power())
	// Output: -1
}

func ExampleWithDefault() {
	c := ioc.New(ioc.WithOptions(ioc.UseDefaultValue))

	_ = ioc.Register[PowerSource, *Generator](c)
	_ = c.Declare(NewGenerator, ioc.WithDefault(0, "750"))
	_ = c.Declare(NewLaptop)

	laptop, _ := ioc.Resolve[*Laptop](c)

	fmt.Println(laptop.Power())
	// Output: 750
}

func ExampleContainer_Inspect() {
	c := ioc.New()

	_ = c.Declare(NewLaptop)

	for _, ctor := range ioc.Describe[*Laptop](c).Constructors {
		for _, p := range ctor.Params {
			fmt.Println(p.Index, p.Type, p.Strategy)
		}
	}
	// Output: 0 ioc_test.PowerSource FromRegistry
}

func ExampleParseContainerOptions() {
	opts, err := ioc.ParseContainerOptions("DetectCycles|UseDefaultValue")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(opts)
	// Output: UseDefaultValue|DetectCycles
}
