// Package units converts water levels and amplitudes between the two
// measurement systems the NOAA CO-OPS services report in.
package units

import (
	"errors"
	"fmt"
)

// Unit is a linear measurement system for water levels.
type Unit string

const (
	Meters Unit = "meters"
	Feet   Unit = "feet"

	metersPerFoot = 0.3048
)

// ErrUnknown reports a unit outside {meters, feet}.
var ErrUnknown = errors.New("unknown unit")

// Valid reports whether u is a unit this package can convert.
func (u Unit) Valid() bool {
	return u == Meters || u == Feet
}

// Convert re-expresses v in a different unit. Converting a value to its
// own unit is the identity.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w %q", ErrUnknown, string(from))
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w %q", ErrUnknown, string(to))
	}
	switch {
	case from == Feet && to == Meters:
		return v * metersPerFoot, nil
	case from == Meters && to == Feet:
		return v / metersPerFoot, nil
	default:
		return v, nil
	}
}
