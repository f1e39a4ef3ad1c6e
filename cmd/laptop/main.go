// Command laptop wires a Laptop to a power source through the container and
// prints the power it reports.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/xraph/ioc"
)

// PowerSource supplies power to a device.
type PowerSource interface {
	GetPower() int
}

// Battery is a depleted battery.
type Battery struct{}

func NewBattery() *Battery { return &Battery{} }

func (*Battery) GetPower() int { return -1 }

// PowerOutlet is mains power.
type PowerOutlet struct{}

func NewPowerOutlet() *PowerOutlet { return &PowerOutlet{} }

func (*PowerOutlet) GetPower() int { return 100000 }

// Generator produces a configurable amount of power.
type Generator struct {
	output int
}

func NewGenerator(output int) *Generator { return &Generator{output: output} }

func (g *Generator) GetPower() int { return g.output }

// Laptop draws power from its source.
type Laptop struct {
	source PowerSource
}

func NewLaptop(source PowerSource) *Laptop { return &Laptop{source: source} }

func (l *Laptop) Power() int { return l.source.GetPower() }

func main() {
	source := pflag.String("source", "battery", "power source: battery, outlet or generator")
	output := pflag.Int("generator-output", 500, "default generator output, used with --use-default-value")
	optionNames := pflag.String("options", "None", `container options, e.g. "UseDefaultValue|DetectCycles"`)
	useDefaults := pflag.Bool("use-default-value", false, "shorthand for --options=UseDefaultValue")
	verbose := pflag.BoolP("verbose", "v", false, "log constructor selection")
	pflag.Parse()

	if err := run(os.Stdout, *source, *output, *optionNames, *useDefaults, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}

func run(out io.Writer, source string, output int, optionNames string, useDefaults, verbose bool) error {
	options, err := ioc.ParseContainerOptions(optionNames)
	if err != nil {
		return err
	}

	if useDefaults {
		options |= ioc.UseDefaultValue
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	c := ioc.New(ioc.WithOptions(options), ioc.WithLogger(logger))

	if err := ioc.DeclareAll(c, NewBattery, NewPowerOutlet, NewLaptop); err != nil {
		return err
	}

	if err := c.Declare(NewGenerator, ioc.WithDefault(0, output)); err != nil {
		return err
	}

	var binding ioc.Binding

	switch source {
	case "battery":
		binding = ioc.Bind[PowerSource, *Battery]()
	case "outlet":
		binding = ioc.Bind[PowerSource, *PowerOutlet]()
	case "generator":
		binding = ioc.Bind[PowerSource, *Generator]()
	default:
		return fmt.Errorf("unknown power source %q", source)
	}

	if err := ioc.RegisterAll(c, binding); err != nil {
		return err
	}

	laptop, err := ioc.Resolve[*Laptop](c)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, laptop.Power())

	return err
}
