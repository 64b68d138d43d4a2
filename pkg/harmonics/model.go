package harmonics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Epoch anchors the synthesis time axis. All phase angles are measured
// in hours elapsed since this instant.
var Epoch = time.Unix(0, 0).UTC()

// Model is a synthesizable harmonic tide model: parallel constituent,
// amplitude, and phase sequences. Amplitudes are in the unit the tide
// will be predicted in; phases are degrees.
type Model struct {
	Constituents []Constituent
	Amplitudes   []float64
	Phases       []float64
}

// Len returns the number of terms in the model.
func (m Model) Len() int {
	return len(m.Constituents)
}

// Valid reports whether the parallel sequences agree in length.
func (m Model) Valid() bool {
	return len(m.Constituents) == len(m.Amplitudes) &&
		len(m.Constituents) == len(m.Phases)
}

// At evaluates the model at a single instant.
func (m Model) At(t time.Time) float64 {
	dt := t.Sub(Epoch).Hours()
	var h float64
	for i, c := range m.Constituents {
		angle := deg2rad(c.Speed*dt - m.Phases[i])
		h += m.Amplitudes[i] * math.Cos(angle)
	}
	return h
}

// Heights evaluates the model at each instant, in order.
func (m Model) Heights(times []time.Time) []float64 {
	heights := make([]float64, len(times))
	for i, t := range times {
		heights[i] = m.At(t)
	}
	return heights
}

// Subset builds a new model keeping only the named constituents, with
// amplitudes and phases carried over from m. Names absent from m are an
// error.
func (m Model) Subset(names ...string) (Model, error) {
	sub := Model{
		Constituents: make([]Constituent, 0, len(names)),
		Amplitudes:   make([]float64, 0, len(names)),
		Phases:       make([]float64, 0, len(names)),
	}
	var missing []string
	for _, name := range names {
		found := false
		for i, c := range m.Constituents {
			if c.Name == name {
				sub.Constituents = append(sub.Constituents, c)
				sub.Amplitudes = append(sub.Amplitudes, m.Amplitudes[i])
				sub.Phases = append(sub.Phases, m.Phases[i])
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Model{}, fmt.Errorf("constituents not in model: %s",
			strings.Join(missing, ", "))
	}
	return sub, nil
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
