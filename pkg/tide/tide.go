// Package tide assembles synthesizable harmonic models from CO-OPS
// station metadata and predicts tide heights over dense time grids.
package tide

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidelab/detide/pkg/coops"
	"github.com/tidelab/detide/pkg/harmonics"
	"github.com/tidelab/detide/pkg/units"
)

const (
	// DefaultDatum anchors predictions to mean tide level.
	DefaultDatum = "MTL"

	// Step is the prediction grid spacing, a tenth of an hour.
	Step = 6 * time.Minute
)

var (
	// ErrNonStandardHarcon reports a station whose constituent numbers
	// are not exactly 1..37 in order. Such a catalog is unsupported.
	ErrNonStandardHarcon = errors.New("non-standard harmonic constituent catalog")

	// ErrMissingDatum reports a datum the station does not carry.
	ErrMissingDatum = errors.New("datum not reported for station")

	// ErrEmptyRange reports a prediction window that does not start
	// before it ends.
	ErrEmptyRange = errors.New("begin must precede end")
)

// MakeModel fetches a station's harmonic constituents and datums and
// assembles a model anchored to the target datum. The result carries
// the 37 standard constituents plus a zero frequency term whose
// amplitude is the signed offset of MSL above the target datum.
// Amplitudes are meters.
func MakeModel(c *coops.Client, station, datum string) (harmonics.Model, error) {
	if datum == "" {
		datum = DefaultDatum
	}

	harcon, _, err := c.FetchHarcon(station, units.Meters)
	if err != nil {
		return harmonics.Model{}, err
	}
	if len(harcon) != len(harmonics.Standard) {
		return harmonics.Model{}, fmt.Errorf("%w: station %s reports %d constituents",
			ErrNonStandardHarcon, station, len(harcon))
	}

	m := harmonics.Model{
		Constituents: make([]harmonics.Constituent, 0, len(harcon)+1),
		Amplitudes:   make([]float64, 0, len(harcon)+1),
		Phases:       make([]float64, 0, len(harcon)+1),
	}
	for i, h := range harcon {
		if h.Number != harmonics.Standard[i].Number {
			return harmonics.Model{}, fmt.Errorf("%w: station %s has number %d in slot %d",
				ErrNonStandardHarcon, station, h.Number, i+1)
		}
		m.Constituents = append(m.Constituents, harmonics.Standard[i])
		m.Amplitudes = append(m.Amplitudes, h.Amplitude)
		m.Phases = append(m.Phases, h.PhaseGMT)
	}

	datums, _, err := c.FetchDatums(station, units.Meters)
	if err != nil {
		return harmonics.Model{}, err
	}
	msl, ok := datumValue(datums, "MSL")
	if !ok {
		return harmonics.Model{}, fmt.Errorf("%w: MSL (station %s)", ErrMissingDatum, station)
	}
	target, ok := datumValue(datums, datum)
	if !ok {
		return harmonics.Model{}, fmt.Errorf("%w: %s (station %s)", ErrMissingDatum, datum, station)
	}

	// The constant offset rides on the zero frequency term.
	m.Constituents = append(m.Constituents, harmonics.Z0)
	m.Amplitudes = append(m.Amplitudes, msl-target)
	m.Phases = append(m.Phases, 0)
	return m, nil
}

// Datetimes returns the prediction grid from begin to end at Step
// spacing, endpoint included.
func Datetimes(begin, end time.Time) []time.Time {
	var times []time.Time
	for t := begin; !t.After(end); t = t.Add(Step) {
		times = append(times, t)
	}
	return times
}

// Predict evaluates the model over the dense grid between begin and
// end, one height per Datetimes timestamp.
func Predict(m harmonics.Model, begin, end time.Time) ([]float64, error) {
	if !begin.Before(end) {
		return nil, fmt.Errorf("%w: begin %s, end %s", ErrEmptyRange, begin, end)
	}
	return m.Heights(Datetimes(begin, end)), nil
}

func datumValue(datums []coops.Datum, name string) (float64, bool) {
	for _, d := range datums {
		if d.Name == name {
			return d.Value, true
		}
	}
	return 0, false
}
