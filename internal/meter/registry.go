package meter

import (
	"fmt"
	"sort"
)

// FactoryOpts carries the per-group options a session file can attach to
// a measurement function.
type FactoryOpts struct {
	// Probe selects the thermocouple type for temperature groups.
	Probe string
}

// Factory builds a MeasurementType from a channel group's options.
type Factory func(opts FactoryOpts) (MeasurementType, error)

// functionRegistry maps the function names used in session files to the
// Go factories that implement them.
var functionRegistry = map[string]Factory{}

// RegisterFunction registers a measurement function under a session-file
// name. Registering the same name twice is a programmer error.
func RegisterFunction(name string, factory Factory) {
	if _, exists := functionRegistry[name]; exists {
		panic(fmt.Sprintf("measurement function %q already registered", name))
	}
	functionRegistry[name] = factory
}

// LookupFunction resolves a session-file function name.
func LookupFunction(name string) (Factory, bool) {
	factory, ok := functionRegistry[name]
	return factory, ok
}

// FunctionNames returns the registered function names, sorted for stable
// error messages.
func FunctionNames() []string {
	names := make([]string, 0, len(functionRegistry))
	for name := range functionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fixed(mt MeasurementType) Factory {
	return func(FactoryOpts) (MeasurementType, error) { return mt, nil }
}

func init() {
	RegisterFunction("temperature", func(opts FactoryOpts) (MeasurementType, error) {
		return Thermocouple(opts.Probe)
	})
	RegisterFunction("dc_volts", fixed(DCVolts()))
	RegisterFunction("ac_volts", fixed(ACVolts()))
	RegisterFunction("dc_current", fixed(DCCurrent()))
	RegisterFunction("ac_current", fixed(ACCurrent()))
	RegisterFunction("resistance", fixed(Resistance()))
	RegisterFunction("four_wire_resistance", fixed(FourWireResistance()))
}
