// Package surge isolates the meteorological residual in a station's
// water level record by subtracting the predicted astronomical tide
// from the observed signal, expressed on a time axis relative to a
// landfall event.
package surge

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidelab/detide/pkg/coops"
	"github.com/tidelab/detide/pkg/noaa"
	"github.com/tidelab/detide/pkg/tide"
	"github.com/tidelab/detide/pkg/timetricks"
)

// ErrLengthMismatch reports observed and predicted sequences that
// cannot be subtracted element-wise.
var ErrLengthMismatch = errors.New("observed and predicted lengths differ")

// Result is an index aligned surge signal.
type Result struct {
	// Days holds each observation time as signed fractional days from
	// landfall; negative is before landfall.
	Days []float64
	// Surge holds the detided heights, in the units of the retrieval.
	Surge []float64
}

// Detide subtracts the predicted tide from the observed water level,
// element-wise. Both sequences describe the same sampling grid by
// index; a length mismatch is fatal.
func Detide(observed, predicted []float64) ([]float64, error) {
	if len(observed) != len(predicted) {
		return nil, fmt.Errorf("%w: %d observed, %d predicted",
			ErrLengthMismatch, len(observed), len(predicted))
	}
	out := make([]float64, len(observed))
	for i := range observed {
		out[i] = observed[i] - predicted[i]
	}
	return out, nil
}

// Run predicts the tide at the station over [begin, end], fetches the
// observed water level for the same window, and returns the detided
// surge anchored to landfall.
func Run(c *coops.Client, f *noaa.Fetcher, station string, begin, end, landfall time.Time) (*Result, error) {
	model, err := tide.MakeModel(c, station, tide.DefaultDatum)
	if err != nil {
		return nil, err
	}
	predicted, err := tide.Predict(model, begin, end)
	if err != nil {
		return nil, err
	}

	q := &noaa.SeriesQuery{
		Station:  station,
		Begin:    begin,
		End:      end,
		Datum:    tide.DefaultDatum,
		TimeZone: "GMT",
		Units:    "metric",
	}
	times, observed, _, err := f.FetchTideData(q)
	if err != nil {
		return nil, err
	}
	if observed == nil {
		return nil, fmt.Errorf("no observed water level for station %s", station)
	}

	s, err := Detide(observed, predicted)
	if err != nil {
		return nil, err
	}

	days := make([]float64, len(times))
	for i, t := range times {
		days[i] = timetricks.DaysFrom(t, landfall)
	}
	return &Result{Days: days, Surge: s}, nil
}
