package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFunctionKnownNames(t *testing.T) {
	for _, name := range []string{
		"temperature", "dc_volts", "ac_volts", "dc_current",
		"ac_current", "resistance", "four_wire_resistance",
	} {
		factory, ok := LookupFunction(name)
		require.True(t, ok, "function %q must be registered", name)
		require.NotNil(t, factory)
	}

	_, ok := LookupFunction("frequency")
	assert.False(t, ok)
}

func TestTemperatureFactoryUsesProbe(t *testing.T) {
	factory, ok := LookupFunction("temperature")
	require.True(t, ok)

	mt, err := factory(FactoryOpts{Probe: "t"})
	require.NoError(t, err)
	assert.Equal(t, "TEMP", mt.Function)
	assert.Contains(t, mt.Setup, "SENS:TEMP:TC:TYPE T")

	// The probe defaults to a type K thermocouple.
	mt, err = factory(FactoryOpts{})
	require.NoError(t, err)
	assert.Contains(t, mt.Setup, "SENS:TEMP:TC:TYPE K")

	_, err = factory(FactoryOpts{Probe: "Z"})
	require.Error(t, err)
}

func TestFunctionNamesSorted(t *testing.T) {
	names := FunctionNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
}

func TestRegisterFunctionPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterFunction("dc_volts", fixed(DCVolts()))
	})
}
