package meter

import (
	"fmt"
	"strings"
)

// MeasurementType describes how a group of channels is configured before
// scanning. Function is the instrument's base sense function (TEMP, VOLT,
// CURR, RES, FRES); Setup carries the SCPI commands applied per channel,
// without the trailing channel-list argument.
type MeasurementType struct {
	Function string
	Setup    []string
}

// thermocoupleTypes lists the probe types the 2700 accepts.
var thermocoupleTypes = map[string]bool{
	"B": true, "E": true, "J": true, "K": true,
	"N": true, "R": true, "S": true, "T": true,
}

// Thermocouple returns the measurement type for a thermocouple probe of
// the given type (e.g. "K"), using the internal reference junction.
func Thermocouple(tcType string) (MeasurementType, error) {
	tcType = strings.ToUpper(strings.TrimSpace(tcType))
	if tcType == "" {
		tcType = "K"
	}
	if !thermocoupleTypes[tcType] {
		return MeasurementType{}, fmt.Errorf("unknown thermocouple type %q", tcType)
	}
	return MeasurementType{
		Function: "TEMP",
		Setup: []string{
			"SENS:FUNC 'TEMP'",
			"SENS:TEMP:TRAN TC",
			"SENS:TEMP:TC:TYPE " + tcType,
			"SENS:TEMP:TC:RJUN:RSEL INT",
		},
	}, nil
}

// DCVolts returns the measurement type for DC voltage.
func DCVolts() MeasurementType {
	return MeasurementType{Function: "VOLT", Setup: []string{"SENS:FUNC 'VOLT:DC'"}}
}

// ACVolts returns the measurement type for AC voltage.
func ACVolts() MeasurementType {
	return MeasurementType{Function: "VOLT", Setup: []string{"SENS:FUNC 'VOLT:AC'"}}
}

// DCCurrent returns the measurement type for DC current.
func DCCurrent() MeasurementType {
	return MeasurementType{Function: "CURR", Setup: []string{"SENS:FUNC 'CURR:DC'"}}
}

// ACCurrent returns the measurement type for AC current.
func ACCurrent() MeasurementType {
	return MeasurementType{Function: "CURR", Setup: []string{"SENS:FUNC 'CURR:AC'"}}
}

// Resistance returns the measurement type for 2-wire resistance.
func Resistance() MeasurementType {
	return MeasurementType{Function: "RES", Setup: []string{"SENS:FUNC 'RES'"}}
}

// FourWireResistance returns the measurement type for 4-wire resistance,
// which the 2700 pairs with the sense channel on the same card.
func FourWireResistance() MeasurementType {
	return MeasurementType{Function: "FRES", Setup: []string{"SENS:FUNC 'FRES'"}}
}
