package config

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/k2700go/internal/meter"
)

// Validate checks everything that can be checked before touching the
// instrument: the connection settings, channel uniqueness, and that
// every group names a registered measurement function.
func (s *Session) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("session has no name")
	}

	s.Connection = s.Connection.Normalize()
	if err := s.Connection.Validate(); err != nil {
		return fmt.Errorf("session %q: %w", s.Name, err)
	}

	if len(s.Groups) == 0 {
		return fmt.Errorf("session %q defines no channels", s.Name)
	}

	seen := make(map[int]string)
	for _, group := range s.Groups {
		if len(group.IDs) == 0 {
			return fmt.Errorf("channel group %q lists no channel ids", group.Name)
		}
		if _, ok := meter.LookupFunction(group.Function); !ok {
			return fmt.Errorf("channel group %q: unknown function %q (known: %s)",
				group.Name, group.Function, strings.Join(meter.FunctionNames(), ", "))
		}
		for _, id := range group.IDs {
			if id <= 0 {
				return fmt.Errorf("channel group %q: invalid channel id %d", group.Name, id)
			}
			if owner, dup := seen[id]; dup {
				return fmt.Errorf("channel %d appears in both group %q and group %q", id, owner, group.Name)
			}
			seen[id] = group.Name
		}
	}

	switch strings.ToUpper(s.TemperatureUnits) {
	case "", "C", "F", "K":
	default:
		return fmt.Errorf("session %q: invalid temperature unit %q", s.Name, s.TemperatureUnits)
	}

	if s.Scan.Interval < 0 {
		return fmt.Errorf("session %q: negative scan interval", s.Name)
	}
	if s.Scan.Count < 0 {
		return fmt.Errorf("session %q: negative scan count", s.Name)
	}
	if s.Scan.Rounding < 0 {
		return fmt.Errorf("session %q: negative scan rounding", s.Name)
	}
	if s.StatusPort < 0 || s.StatusPort > 65535 {
		return fmt.Errorf("session %q: invalid status port %d", s.Name, s.StatusPort)
	}

	return nil
}
