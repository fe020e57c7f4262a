package scpi

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// readingPattern matches the leading number of a unit-tagged engineering
// string such as "+2.27246074E+01C" or "+1.38123456E+03SECS".
var readingPattern = regexp.MustCompile(`[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`)

// ParseReading extracts the numeric value from a unit-tagged reading
// string, ignoring any trailing unit letters.
func ParseReading(s string) (float64, error) {
	match := readingPattern.FindString(s)
	if match == "" {
		return 0, fmt.Errorf("no numeric value in reading %q", s)
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed reading %q: %w", s, err)
	}
	return value, nil
}

// SplitResponse splits a comma-separated instrument response into its
// trimmed fields. Empty responses yield an empty slice.
func SplitResponse(response string) []string {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil
	}
	parts := strings.Split(response, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields
}

// Identity is the decoded form of a "*IDN?" response.
type Identity struct {
	Manufacturer string
	Model        string
	Serial       string
	Firmware     string
}

// String renders the identity in the instrument's own comma format.
func (id Identity) String() string {
	return strings.Join([]string{id.Manufacturer, id.Model, id.Serial, id.Firmware}, ",")
}

// ParseIDN decodes a "*IDN?" response of the form
// "KEITHLEY INSTRUMENTS INC.,MODEL 2700,1234567,B09".
func ParseIDN(response string) (Identity, error) {
	fields := SplitResponse(response)
	if len(fields) < 4 {
		return Identity{}, fmt.Errorf("short identification response %q", response)
	}
	return Identity{
		Manufacturer: fields[0],
		Model:        fields[1],
		Serial:       fields[2],
		Firmware:     fields[3],
	}, nil
}

// ChannelList renders the 2700's route syntax for a set of channels,
// e.g. "(@101,102,110)".
func ChannelList(ids []int) string {
	var b strings.Builder
	b.WriteString("(@")
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte(')')
	return b.String()
}
